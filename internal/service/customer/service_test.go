package customer

import (
	"context"
	"errors"
	"testing"

	"orderdesk/internal/domain"
	custrepo "orderdesk/internal/repository/customer"
)

// recordingRepo captures the inputs the service hands to the repository.
type recordingRepo struct {
	created  *custrepo.CreateInput
	updated  *custrepo.UpdateInput
	customer *domain.Customer
	err      error
}

func (r *recordingRepo) List(_ context.Context, _ custrepo.ListFilter) ([]domain.Customer, error) {
	return nil, r.err
}

func (r *recordingRepo) Get(_ context.Context, _ string) (*domain.Customer, error) {
	return r.customer, r.err
}

func (r *recordingRepo) Create(_ context.Context, in custrepo.CreateInput) (*domain.Customer, error) {
	r.created = &in
	return r.customer, r.err
}

func (r *recordingRepo) Update(_ context.Context, _ string, in custrepo.UpdateInput) (*domain.Customer, error) {
	r.updated = &in
	return r.customer, r.err
}

func (r *recordingRepo) Delete(_ context.Context, _ string) error {
	return r.err
}

func TestCreate_PassesValidInputThrough(t *testing.T) {
	repo := &recordingRepo{customer: &domain.Customer{ID: "c1"}}

	got, err := New(repo).Create(context.Background(), CreateInput{
		Name:  "Sato Bakery",
		Rank:  domain.RankTop,
		Phone: "03-1234-5678",
	})
	if err != nil {
		t.Fatalf("create returned error: %v", err)
	}
	if got == nil || got.ID != "c1" {
		t.Fatalf("unexpected customer %+v", got)
	}
	if repo.created == nil || repo.created.Name != "Sato Bakery" || repo.created.Rank != domain.RankTop {
		t.Fatalf("repository got %+v", repo.created)
	}
}

func TestCreate_RejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		in   CreateInput
	}{
		{"missing name", CreateInput{Rank: domain.RankTop}},
		{"blank name", CreateInput{Name: "   "}},
		{"unknown rank", CreateInput{Name: "Sato Bakery", Rank: "S"}},
	}
	for _, tc := range cases {
		repo := &recordingRepo{}
		_, err := New(repo).Create(context.Background(), tc.in)
		var verr domain.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("case %s: expected ValidationError, got %v", tc.name, err)
		}
		if repo.created != nil {
			t.Fatalf("case %s: repository was called", tc.name)
		}
	}
}

func TestCreate_RankIsOptional(t *testing.T) {
	repo := &recordingRepo{customer: &domain.Customer{ID: "c1"}}
	if _, err := New(repo).Create(context.Background(), CreateInput{Name: "Sato Bakery"}); err != nil {
		t.Fatalf("create returned error: %v", err)
	}
}

func TestUpdate_ForwardsOnlyProvidedFields(t *testing.T) {
	repo := &recordingRepo{customer: &domain.Customer{ID: "c1"}}
	rank := domain.RankRegular

	_, err := New(repo).Update(context.Background(), "c1", UpdateInput{Rank: &rank})
	if err != nil {
		t.Fatalf("update returned error: %v", err)
	}
	if repo.updated.Rank == nil || *repo.updated.Rank != domain.RankRegular {
		t.Fatalf("rank not forwarded: %+v", repo.updated)
	}
	if repo.updated.Name != nil || repo.updated.Phone != nil {
		t.Fatalf("absent fields leaked through: %+v", repo.updated)
	}
}

func TestUpdate_RejectsBadInput(t *testing.T) {
	empty := ""
	badRank := "S"

	cases := []struct {
		name string
		in   UpdateInput
	}{
		{"empty name", UpdateInput{Name: &empty}},
		{"empty rank", UpdateInput{Rank: &empty}},
		{"unknown rank", UpdateInput{Rank: &badRank}},
	}
	for _, tc := range cases {
		repo := &recordingRepo{}
		_, err := New(repo).Update(context.Background(), "c1", tc.in)
		var verr domain.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("case %s: expected ValidationError, got %v", tc.name, err)
		}
		if repo.updated != nil {
			t.Fatalf("case %s: repository was called", tc.name)
		}
	}
}

func TestUpdate_ClearingNotesIsAllowed(t *testing.T) {
	repo := &recordingRepo{customer: &domain.Customer{ID: "c1"}}
	empty := ""

	_, err := New(repo).Update(context.Background(), "c1", UpdateInput{Notes: &empty})
	if err != nil {
		t.Fatalf("update returned error: %v", err)
	}
	if repo.updated.Notes == nil || *repo.updated.Notes != "" {
		t.Fatalf("notes not forwarded: %+v", repo.updated)
	}
}
