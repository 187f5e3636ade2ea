package services

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/karim-d/VentureLinkBack/internal/models"
)

type stubCatalog struct {
	listings []models.Listing
}

func (s *stubCatalog) ListActive(_ context.Context) ([]models.Listing, error) {
	return s.listings, nil
}

type stubJobCatalog struct {
	jobs []models.Job
}

func (s *stubJobCatalog) ListActive(_ context.Context) ([]models.Job, error) {
	return s.jobs, nil
}

type stubProfileReader struct {
	profile *models.InvestorProfile
}

func (s *stubProfileReader) GetByUserID(_ context.Context, _ int64) (*models.InvestorProfile, error) {
	return s.profile, nil
}

func buildProfile(industries, geoFocus []string) *models.InvestorProfile {
	return &models.InvestorProfile{
		ID:         1,
		UserID:     1,
		Industries: &industries,
		GeoFocus:   &geoFocus,
	}
}

func buildListing(id int64, slug, country string) models.Listing {
	return models.Listing{
		ID:           id,
		OwnerID:      100 + id,
		Title:        "listing",
		CategorySlug: slug,
		Country:      country,
		IsActive:     true,
		CreatedAt:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(-id) * time.Hour),
	}
}

func newMatchingService(profile *models.InvestorProfile, listings []models.Listing, jobs []models.Job) *MatchingService {
	return NewMatchingService(
		&stubProfileReader{profile: profile},
		&stubCatalog{listings: listings},
		&stubJobCatalog{jobs: jobs},
	)
}

func TestMatchListingsScoresIndustryAndGeo(t *testing.T) {
	service := newMatchingService(
		buildProfile([]string{"fintech"}, []string{"FR"}),
		[]models.Listing{
			buildListing(1, "fintech", "FR"),
			buildListing(2, "retail", "DE"),
		},
		nil,
	)

	matched, err := service.MatchListings(context.Background(), 1, 0)
	if err != nil {
		t.Fatalf("MatchListings: %v", err)
	}

	if len(matched) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matched))
	}
	if matched[0].ID != 1 || matched[0].MatchScore != 3 {
		t.Fatalf("expected listing 1 with score 3, got listing %d with score %d", matched[0].ID, matched[0].MatchScore)
	}
}

func TestMatchListingsTokenizesSlugOnDash(t *testing.T) {
	service := newMatchingService(
		buildProfile([]string{"saas", "health"}, nil),
		[]models.Listing{
			buildListing(1, "health-tech-saas", "US"),
			buildListing(2, "e-commerce", "US"),
		},
		nil,
	)

	matched, err := service.MatchListings(context.Background(), 1, 0)
	if err != nil {
		t.Fatalf("MatchListings: %v", err)
	}

	if len(matched) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matched))
	}
	if matched[0].ID != 1 || matched[0].MatchScore != 4 {
		t.Fatalf("expected listing 1 with score 4, got listing %d with score %d", matched[0].ID, matched[0].MatchScore)
	}
}

func TestMatchListingsRequiresMeaningfulTokenOverlap(t *testing.T) {
	service := newMatchingService(
		buildProfile([]string{"health", "commerce"}, nil),
		[]models.Listing{
			// Token "e" is a substring of "health" but must not score.
			buildListing(1, "e-commerce", "US"),
			buildListing(2, "e-learning", "US"),
		},
		nil,
	)

	matched, err := service.MatchListings(context.Background(), 1, 0)
	if err != nil {
		t.Fatalf("MatchListings: %v", err)
	}

	if len(matched) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matched))
	}
	// "commerce" matches the exact token; "health" matches nothing.
	if matched[0].ID != 1 || matched[0].MatchScore != 2 {
		t.Fatalf("expected listing 1 with score 2, got listing %d with score %d", matched[0].ID, matched[0].MatchScore)
	}
}

func TestMatchListingsSortsByScoreKeepingCatalogOrderOnTies(t *testing.T) {
	service := newMatchingService(
		buildProfile([]string{"fintech"}, []string{"FR"}),
		[]models.Listing{
			buildListing(1, "fintech", "DE"),
			buildListing(2, "fintech", "FR"),
			buildListing(3, "fintech", "DE"),
		},
		nil,
	)

	matched, err := service.MatchListings(context.Background(), 1, 0)
	if err != nil {
		t.Fatalf("MatchListings: %v", err)
	}

	if len(matched) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(matched))
	}
	if matched[0].ID != 2 {
		t.Fatalf("expected geo-matching listing 2 first, got %d", matched[0].ID)
	}
	// Tied scores keep the catalog's newest-first order.
	if matched[1].ID != 1 || matched[2].ID != 3 {
		t.Fatalf("expected tie order 1 then 3, got %d then %d", matched[1].ID, matched[2].ID)
	}
}

func TestMatchListingsAppliesDefaultLimit(t *testing.T) {
	listings := make([]models.Listing, 0, 10)
	for i := int64(1); i <= 10; i++ {
		listings = append(listings, buildListing(i, "fintech", "FR"))
	}
	service := newMatchingService(buildProfile([]string{"fintech"}, nil), listings, nil)

	matched, err := service.MatchListings(context.Background(), 1, 0)
	if err != nil {
		t.Fatalf("MatchListings: %v", err)
	}
	if len(matched) != defaultMatchLimit {
		t.Fatalf("expected default limit %d, got %d", defaultMatchLimit, len(matched))
	}

	matched, err = service.MatchListings(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("MatchListings: %v", err)
	}
	if len(matched) != 2 {
		t.Fatalf("expected explicit limit 2, got %d", len(matched))
	}
}

func TestMatchListingsIsDeterministic(t *testing.T) {
	service := newMatchingService(
		buildProfile([]string{"fintech", "saas"}, []string{"FR", "DE"}),
		[]models.Listing{
			buildListing(1, "fintech-saas", "FR"),
			buildListing(2, "saas", "DE"),
			buildListing(3, "fintech", "US"),
			buildListing(4, "retail", "US"),
		},
		nil,
	)

	first, err := service.MatchListings(context.Background(), 1, 0)
	if err != nil {
		t.Fatalf("MatchListings: %v", err)
	}

	for i := 0; i < 5; i++ {
		again, err := service.MatchListings(context.Background(), 1, 0)
		if err != nil {
			t.Fatalf("MatchListings: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("expected stable ordering, got %+v then %+v", first, again)
		}
	}
}

func TestMatchJobsUsesSameScoring(t *testing.T) {
	service := newMatchingService(
		buildProfile([]string{"fintech"}, []string{"FR"}),
		nil,
		[]models.Job{
			{ID: 1, OwnerID: 9, CategorySlug: "fintech", Country: "FR", IsActive: true},
			{ID: 2, OwnerID: 9, CategorySlug: "logistics", Country: "BR", IsActive: true},
		},
	)

	matched, err := service.MatchJobs(context.Background(), 1, 0)
	if err != nil {
		t.Fatalf("MatchJobs: %v", err)
	}

	if len(matched) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matched))
	}
	if matched[0].ID != 1 || matched[0].MatchScore != 3 {
		t.Fatalf("expected job 1 with score 3, got job %d with score %d", matched[0].ID, matched[0].MatchScore)
	}
}
