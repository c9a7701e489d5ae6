package services

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/carelink-cm/carelink-backend/internal/domain/entities"
	"github.com/carelink-cm/carelink-backend/internal/domain/repositories"
	"github.com/carelink-cm/carelink-backend/internal/infrastructure/clients/doctorapi"
	apperrors "github.com/carelink-cm/carelink-backend/pkg/errors"
	"github.com/carelink-cm/carelink-backend/pkg/utils"
)

// fetchLimit bounds how many doctors one search pulls from the upstream.
const fetchLimit = 200

// SearchResult is the search payload handed to the rendering layer.
type SearchResult struct {
	Doctors      []entities.Doctor     `json:"doctors"`
	Stats        *entities.SearchStats `json:"stats,omitempty"`
	TotalCount   int                   `json:"total_count"`
	SearchTimeMs float64               `json:"search_time_ms"`
}

// DoctorService orchestrates the search pipeline: fetch raw records from the
// upstream doctor API (falling back to the local repository when the upstream
// is down), normalize, filter, rank and aggregate stats.
//
// Concurrent searches race under a last-resolved-wins policy: each fetch is
// tagged with a monotonically increasing sequence, and only a response
// carrying the newest sequence may replace the snapshot that feeds the
// suggestion engine. Stale responses are discarded, never merged.
type DoctorService struct {
	source  doctorapi.Client
	repo    repositories.DoctorRepository
	filter  *DoctorFilterService
	ranking *SearchRankingService
	stats   *SearchStatsService

	mu        sync.Mutex
	nextSeq   uint64
	latestSeq uint64
	snapshot  []entities.Doctor
}

// NewDoctorService creates a new doctor service. Either source or repo may be
// nil, but not both.
func NewDoctorService(
	source doctorapi.Client,
	repo repositories.DoctorRepository,
	filter *DoctorFilterService,
	ranking *SearchRankingService,
	stats *SearchStatsService,
) *DoctorService {
	return &DoctorService{
		source:  source,
		repo:    repo,
		filter:  filter,
		ranking: ranking,
		stats:   stats,
	}
}

// Search runs the full pipeline for one search action.
func (s *DoctorService) Search(ctx context.Context, filters entities.SearchFilters) (*SearchResult, error) {
	started := time.Now()
	seq := s.beginFetch()

	doctors, err := s.fetch(ctx)
	if err != nil {
		// Clear the snapshot so the UI can never show filtered output
		// inconsistent with the error state.
		s.resolveFetch(seq, nil)
		return nil, err
	}
	s.resolveFetch(seq, doctors)

	filtered := s.filter.Filter(doctors, filters)
	ranked := s.ranking.Rank(filtered, filters.SortBy, filters.SortOrder)

	return &SearchResult{
		Doctors:      ranked,
		Stats:        s.stats.Aggregate(ranked),
		TotalCount:   len(ranked),
		SearchTimeMs: float64(time.Since(started).Microseconds()) / 1000.0,
	}, nil
}

// GetByID fetches and normalizes a single doctor.
func (s *DoctorService) GetByID(ctx context.Context, id int) (*entities.Doctor, error) {
	if s.source != nil {
		raw, err := s.source.GetDoctor(ctx, id)
		if err == nil {
			doc := utils.NormalizeDoctor(*raw)
			return &doc, nil
		}
		if !s.shouldFallBack(err) {
			return nil, err
		}
		log.Warn().Err(err).Int("doctor_id", id).Msg("doctor API unavailable, falling back to repository")
	}
	if s.repo == nil {
		return nil, apperrors.NewUnavailableError("no doctor source configured", nil)
	}
	return s.repo.GetByID(ctx, id)
}

// Snapshot returns the doctor collection from the most recent resolved fetch,
// the collection the suggestion engine consumes.
func (s *DoctorService) Snapshot() []entities.Doctor {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entities.Doctor, len(s.snapshot))
	copy(out, s.snapshot)
	return out
}

func (s *DoctorService) fetch(ctx context.Context) ([]entities.Doctor, error) {
	if s.source != nil {
		resp, err := s.source.ListDoctors(ctx, doctorapi.ListDoctorsRequest{Limit: fetchLimit})
		if err == nil {
			return utils.NormalizeDoctors(resp.Doctors), nil
		}
		if !s.shouldFallBack(err) || s.repo == nil {
			return nil, err
		}
		log.Warn().Err(err).Msg("doctor API unavailable, falling back to repository")
	}
	if s.repo == nil {
		return nil, apperrors.NewUnavailableError("no doctor source configured", nil)
	}

	records, err := s.repo.List(ctx, repositories.DoctorFilter{Limit: fetchLimit})
	if err != nil {
		return nil, err
	}
	doctors := make([]entities.Doctor, 0, len(records))
	for _, rec := range records {
		doctors = append(doctors, *rec)
	}
	return doctors, nil
}

// shouldFallBack limits the repository fallback to upstream outages; domain
// errors like not-found propagate unchanged.
func (s *DoctorService) shouldFallBack(err error) bool {
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		return false
	}
	return appErr.Type == apperrors.ErrorTypeUnavailable || appErr.Type == apperrors.ErrorTypeExternal
}

func (s *DoctorService) beginFetch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSeq++
	return s.nextSeq
}

// resolveFetch installs the result of fetch seq unless a newer fetch has
// already resolved.
func (s *DoctorService) resolveFetch(seq uint64, doctors []entities.Doctor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.latestSeq {
		return
	}
	s.latestSeq = seq
	s.snapshot = doctors
}
