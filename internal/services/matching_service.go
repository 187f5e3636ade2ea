package services

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/karim-d/VentureLinkBack/internal/models"
)

const defaultMatchLimit = 6

const (
	industryMatchWeight = 2
	geoMatchWeight      = 1
)

type listingCatalog interface {
	ListActive(ctx context.Context) ([]models.Listing, error)
}

type jobCatalog interface {
	ListActive(ctx context.Context) ([]models.Job, error)
}

type investorProfileReader interface {
	GetByUserID(ctx context.Context, userID int64) (*models.InvestorProfile, error)
}

type MatchingService struct {
	profileRepo investorProfileReader
	listingRepo listingCatalog
	jobRepo     jobCatalog
}

func NewMatchingService(
	profileRepo investorProfileReader,
	listingRepo listingCatalog,
	jobRepo jobCatalog,
) *MatchingService {
	return &MatchingService{
		profileRepo: profileRepo,
		listingRepo: listingRepo,
		jobRepo:     jobRepo,
	}
}

// MatchListings ranks active listings against the caller's investor profile.
// Listings that score zero are dropped; ties keep the catalog's
// newest-first order.
func (s *MatchingService) MatchListings(
	ctx context.Context,
	userID int64,
	limit int,
) ([]models.ListingWithScore, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	listings, err := s.listingRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]models.ListingWithScore, 0, len(listings))
	for _, listing := range listings {
		score := matchScore(profile, listing.CategorySlug, listing.Country)
		if score <= 0 {
			continue
		}
		matched = append(matched, models.ListingWithScore{
			Listing:    listing,
			MatchScore: score,
		})
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].MatchScore > matched[j].MatchScore
	})

	return matched[:capLimit(len(matched), limit)], nil
}

func (s *MatchingService) MatchJobs(
	ctx context.Context,
	userID int64,
	limit int,
) ([]models.JobWithScore, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	jobs, err := s.jobRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]models.JobWithScore, 0, len(jobs))
	for _, job := range jobs {
		score := matchScore(profile, job.CategorySlug, job.Country)
		if score <= 0 {
			continue
		}
		matched = append(matched, models.JobWithScore{
			Job:        job,
			MatchScore: score,
		})
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].MatchScore > matched[j].MatchScore
	})

	return matched[:capLimit(len(matched), limit)], nil
}

// matchScore weighs industry overlap between the profile and the record's
// category slug tokens, plus a geography bonus. Pure and deterministic.
func matchScore(profile *models.InvestorProfile, categorySlug string, country string) int {
	score := 0

	tokens := slugTokens(categorySlug)
	for _, industry := range sliceValue(profile.Industries) {
		if industryMatchesTokens(normalizeTerm(industry), tokens) {
			score += industryMatchWeight
		}
	}

	for _, geo := range sliceValue(profile.GeoFocus) {
		if strings.EqualFold(strings.TrimSpace(geo), strings.TrimSpace(country)) {
			score += geoMatchWeight
			break
		}
	}

	return score
}

const minSubstringTerm = 3

func industryMatchesTokens(industry string, tokens []string) bool {
	if industry == "" {
		return false
	}
	for _, token := range tokens {
		if token == industry {
			return true
		}
		// Substring overlap only counts for terms long enough to carry
		// meaning; a one-letter slug token like the "e" in "e-commerce"
		// must never pull in unrelated industries.
		if len(industry) >= minSubstringTerm && strings.Contains(token, industry) {
			return true
		}
	}
	return false
}

func slugTokens(slug string) []string {
	parts := strings.Split(slug, "-")
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		if token := normalizeTerm(part); token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

func normalizeTerm(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	value = strings.ReplaceAll(value, " ", "_")
	return value
}

func sliceValue(values *[]string) []string {
	if values == nil {
		return nil
	}
	return *values
}

func capLimit(matched int, limit int) int {
	if limit <= 0 {
		limit = defaultMatchLimit
	}
	if matched < limit {
		return matched
	}
	return limit
}
