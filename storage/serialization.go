// Copyright 2026 The bookrec Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"github.com/yunseol/bookrec/catalog"
	"github.com/yunseol/bookrec/core"
)

// MarshalKeywordResult serializes a KeywordResult to bytes.
func MarshalKeywordResult(result *core.KeywordResult) []byte {
	buf := make([]byte, core.KeywordResultMUS.Size(*result))
	core.KeywordResultMUS.Marshal(*result, buf)
	return buf
}

// UnmarshalKeywordResult deserializes a KeywordResult from bytes.
func UnmarshalKeywordResult(data []byte) (*core.KeywordResult, error) {
	result, _, err := core.KeywordResultMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// MarshalBook serializes a Book to bytes.
func MarshalBook(book *catalog.Book) []byte {
	buf := make([]byte, catalog.BookMUS.Size(*book))
	catalog.BookMUS.Marshal(*book, buf)
	return buf
}

// UnmarshalBook deserializes a Book from bytes.
func UnmarshalBook(data []byte) (*catalog.Book, error) {
	book, _, err := catalog.BookMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// MarshalAvailability serializes an Availability row to bytes.
func MarshalAvailability(row *catalog.Availability) []byte {
	buf := make([]byte, catalog.AvailabilityMUS.Size(*row))
	catalog.AvailabilityMUS.Marshal(*row, buf)
	return buf
}

// UnmarshalAvailability deserializes an Availability row from bytes.
func UnmarshalAvailability(data []byte) (*catalog.Availability, error) {
	row, _, err := catalog.AvailabilityMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &row, nil
}
