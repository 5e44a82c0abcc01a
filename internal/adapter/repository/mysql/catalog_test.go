package mysql

import (
	"context"
	"errors"
	"testing"

	clientDomain "microfinance-backoffice/internal/domain/client"
	productDomain "microfinance-backoffice/internal/domain/product"
	"microfinance-backoffice/pkg/id"

	"gorm.io/gorm"
)

func TestProductRepository_CRUD(t *testing.T) {
	db := openTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	p := &productDomain.Product{
		ProductID: id.NewID32(), Name: "Kilimo", InterestRate: dec("15.50"), DurationMonths: 6,
		RepaymentFrequency: productDomain.FrequencyWeekly, MaxAmount: dec("75000.25"),
	}
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}

	p.InterestRate = dec("18")
	if err := repo.Save(ctx, p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByProductID(ctx, p.ProductID)
	if err != nil {
		t.Fatalf("GetByProductID: %v", err)
	}
	if !got.InterestRate.Equal(dec("18")) || !got.MaxAmount.Equal(dec("75000.25")) {
		t.Fatalf("unexpected product: %+v", got)
	}
	byID, err := repo.GetByID(ctx, p.ID)
	if err != nil || byID.ProductID != p.ProductID {
		t.Fatalf("GetByID = %v, %v", byID, err)
	}

	list, err := repo.List(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("List = %d, %v", len(list), err)
	}
	if _, err := repo.GetByProductID(ctx, id.NewID32()); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestClientRepository_Lookups(t *testing.T) {
	db := openTestDB(t)
	repo := NewClientRepository(db)
	ctx := context.Background()

	c := &clientDomain.Client{
		ClientID: id.NewID32(), FirstName: "Baraka", LastName: "Otieno",
		ClientType: clientDomain.TypeGroup, NationalID: "NID-778", Status: clientDomain.StatusActive,
	}
	if err := repo.Create(ctx, c); err != nil {
		t.Fatalf("Create: %v", err)
	}

	dup := *c
	dup.ID, dup.ClientID = 0, id.NewID32()
	if err := repo.Create(ctx, &dup); err == nil {
		t.Fatal("duplicate national id must be rejected")
	}

	got, err := repo.GetByNationalID(ctx, "NID-778")
	if err != nil || got.ClientID != c.ClientID {
		t.Fatalf("GetByNationalID = %v, %v", got, err)
	}

	got.Status = clientDomain.StatusInactive
	if err := repo.Save(ctx, got); err != nil {
		t.Fatalf("Save: %v", err)
	}
	reread, _ := repo.GetByClientID(ctx, c.ClientID)
	if reread.CanApply() {
		t.Fatal("inactive client must not apply")
	}
	if byID, err := repo.GetByID(ctx, c.ID); err != nil || byID.ClientID != c.ClientID {
		t.Fatalf("GetByID = %v, %v", byID, err)
	}
}

func TestClientRepository_List(t *testing.T) {
	db := openTestDB(t)
	repo := NewClientRepository(db)
	ctx := context.Background()

	for _, c := range []*clientDomain.Client{
		{FirstName: "Zawadi", LastName: "Mwangi", Status: clientDomain.StatusActive},
		{FirstName: "Amina", LastName: "Mwangi", Status: clientDomain.StatusInactive},
		{FirstName: "Juma", LastName: "Kamau", Status: clientDomain.StatusActive},
	} {
		c.ClientID, c.NationalID, c.ClientType = id.NewID32(), id.NewID32()[:12], clientDomain.TypeIndividual
		if err := repo.Create(ctx, c); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	all, err := repo.List(ctx, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var names []string
	for _, c := range all {
		names = append(names, c.FirstName)
	}
	if len(names) != 3 || names[0] != "Juma" || names[1] != "Amina" || names[2] != "Zawadi" {
		t.Fatalf("order = %v, want [Juma Amina Zawadi]", names)
	}

	active, err := repo.List(ctx, clientDomain.StatusActive)
	if err != nil || len(active) != 2 {
		t.Fatalf("List(ACTIVE) = %d, %v", len(active), err)
	}
}
