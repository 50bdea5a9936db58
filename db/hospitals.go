package db

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"go-healthai/hospitals"
	"go-healthai/types"
)

const hospitalsCollection = "hospitals"

// hospitalDoc is a directory record as stored in Firestore. Order keeps the
// curated directory order, which is the ranking when no coordinates are known.
type hospitalDoc struct {
	types.Hospital
	Order int `firestore:"order"`
}

// LoadHospitals reads the hospitals collection into an immutable directory.
// An empty collection yields hospitals.ErrEmpty.
func LoadHospitals(ctx context.Context, client *firestore.Client) (*hospitals.Directory, error) {
	docs, err := client.Collection(hospitalsCollection).
		OrderBy("order", firestore.Asc).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, fmt.Errorf("read hospitals collection: %w", err)
	}

	list := make([]types.Hospital, 0, len(docs))
	for _, doc := range docs {
		var hd hospitalDoc
		if err := doc.DataTo(&hd); err != nil {
			return nil, fmt.Errorf("decode hospital %s: %w", doc.Ref.ID, err)
		}
		list = append(list, hd.Hospital)
	}

	log.Printf("Loaded %d hospitals from Firestore", len(list))
	return hospitals.NewDirectory(list)
}

// SeedHospitals writes every hospital of repo that is not yet stored, keyed by
// the hash of its name. Existing documents are left untouched. It returns the
// names of the hospitals it created.
func SeedHospitals(ctx context.Context, client *firestore.Client, repo hospitals.Repository) ([]string, error) {
	list := repo.All()
	var created []string

	err := client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		created = created[:0]

		// Firestore transactions need every read before the first write.
		var missing []int
		for i, h := range list {
			ref := client.Collection(hospitalsCollection).Doc(HashString(h.Name))
			if _, err := tx.Get(ref); err != nil {
				if status.Code(err) != codes.NotFound {
					return fmt.Errorf("get hospital doc for %s: %w", h.Name, err)
				}
				missing = append(missing, i)
			}
		}

		for _, i := range missing {
			h := list[i]
			ref := client.Collection(hospitalsCollection).Doc(HashString(h.Name))
			if err := tx.Set(ref, hospitalDoc{Hospital: h, Order: i}); err != nil {
				return fmt.Errorf("set hospital doc for %s: %w", h.Name, err)
			}
			created = append(created, h.Name)
		}
		return nil
	})
	if err != nil {
		log.Printf("Hospital seed transaction failed: %v", err)
		return nil, err
	}

	log.Printf("Seeded %d of %d hospitals", len(created), len(list))
	return created, nil
}
