// Package morph provides the morphological front of the extraction
// pipeline: tokenization of catalog text into classed tokens, lexical
// normalization of foreign-script words to their canonical spelling,
// and frequency/length filtering of keyword candidates.
//
// The heavy lifting of part-of-speech analysis sits behind the Analyzer
// interface so that an external morphological analyzer can be plugged
// in; DictAnalyzer is the built-in implementation based on script
// classes and a user dictionary.
package morph
