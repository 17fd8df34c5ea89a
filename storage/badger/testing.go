package badger

// NewMemoryRepositories creates an in-memory backend with keyword and
// catalog repositories for testing.
func NewMemoryRepositories() (*KeywordRepository, *CatalogRepository, *Backend, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, nil, nil, err
	}

	keywordRepo, err := NewKeywordRepository(backend)
	if err != nil {
		backend.Close()
		return nil, nil, nil, err
	}

	catalogRepo, err := NewCatalogRepository(backend)
	if err != nil {
		keywordRepo.Close()
		backend.Close()
		return nil, nil, nil, err
	}

	return keywordRepo, catalogRepo, backend, nil
}
