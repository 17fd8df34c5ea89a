package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"

	"github.com/yunseol/bookrec/catalog"
	"github.com/yunseol/bookrec/storage/badger"
)

var books = []*catalog.Book{
	{ISBN: "9788936433598", Title: "채식주의자", Authors: "한강", Publisher: "창비", Classification: "813.7", RegisteredAt: "2016-03-02"},
	{ISBN: "9788954655972", Title: "바깥은 여름", Authors: "김애란", Publisher: "문학동네", Classification: "813.7", RegisteredAt: "2017-07-12"},
	{ISBN: "9788932917245", Title: "쇼코의 미소", Authors: "최은영", Publisher: "문학동네", Classification: "813.7", RegisteredAt: "2016-07-04"},
	{ISBN: "9788937460777", Title: "데미안", Authors: "헤르만 헤세", Publisher: "민음사", Classification: "853", RegisteredAt: "2009-01-20"},
	{ISBN: "9788934972464", Title: "사피엔스", Authors: "유발 하라리", Publisher: "김영사", Classification: "909", RegisteredAt: "2015-11-24"},
	{ISBN: "9788983711892", Title: "코스모스", Authors: "칼 세이건", Publisher: "사이언스북스", Classification: "440", RegisteredAt: "2006-12-20"},
	{ISBN: "9791162243077", Title: "밑바닥부터 시작하는 딥러닝", Authors: "사이토 고키", Publisher: "한빛미디어", Classification: "004.73", RegisteredAt: "2017-01-03"},
	{ISBN: "9788966262281", Title: "클린 코드", Authors: "로버트 마틴", Publisher: "인사이트", Classification: "005.1", RegisteredAt: "2013-12-24"},
	{ISBN: "9788960778320", Title: "파이썬 코딩의 기술", Authors: "브렛 슬라킨", Publisher: "길벗", Classification: "005.133", RegisteredAt: "2016-03-31"},
	{ISBN: "9788901219943", Title: "총 균 쇠", Authors: "재레드 다이아몬드", Publisher: "문학사상", Classification: "909", RegisteredAt: "2013-03-25"},
}

var holdings = []*catalog.Availability{
	{ISBN: "9788936433598", Library: "중앙도서관"},
	{ISBN: "9788936433598", Library: "시립도서관"},
	{ISBN: "9788954655972", Library: "중앙도서관"},
	{ISBN: "9788932917245", Library: "시립도서관"},
	{ISBN: "9788937460777", Library: "중앙도서관"},
	{ISBN: "9788934972464", Library: "중앙도서관"},
	{ISBN: "9788934972464", Library: "구립도서관"},
	{ISBN: "9788983711892", Library: "구립도서관"},
	{ISBN: "9791162243077", Library: "중앙도서관"},
	{ISBN: "9788966262281", Library: "중앙도서관"},
	{ISBN: "9788960778320", Library: "시립도서관"},
	{ISBN: "9788901219943", Library: "중앙도서관"},
}

var (
	dbPath       = flag.String("db", "./catalog_db", "badger database directory")
	booksFile    = flag.String("books", "", "JSON file of catalog books")
	holdingsFile = flag.String("holdings", "", "JSON file of availability rows")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

func loadJSON[T any](filename string, fallback []T) ([]T, error) {
	if filename == "" {
		return fallback, nil
	}
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows []T
	if err := json.NewDecoder(f).Decode(&rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func main() {
	backend, err := badger.OpenBackend(*dbPath, false)
	if err != nil {
		panic(err)
	}
	defer backend.Close()

	repo, err := badger.NewCatalogRepository(backend)
	if err != nil {
		panic(err)
	}
	defer repo.Close()

	seedBooks, err := loadJSON(*booksFile, books)
	if err != nil {
		panic(err)
	}
	seedHoldings, err := loadJSON(*holdingsFile, holdings)
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	if err := repo.PutBooks(ctx, seedBooks...); err != nil {
		panic(err)
	}
	if err := repo.PutAvailability(ctx, seedHoldings...); err != nil {
		panic(err)
	}

	slog.Info("catalog seeded", "books", len(seedBooks), "holdings", len(seedHoldings))
}
