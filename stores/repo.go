package stores

type Repo interface {
	Upsert(store *Store) error
	Delete(storeID string) error
	Get(storeID string) (*Store, error)
	List() ([]*Store, error)
}
