package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/jsmcel/androidfutbol5-sub000/internal/domain/development"
	"github.com/jsmcel/androidfutbol5-sub000/pkg/logger"
	"github.com/jsmcel/androidfutbol5-sub000/pkg/metrics"
)

// Academy intake policy for the managed team.
const (
	BaseYouthIntake           = 2
	StrongAcademyRating       = 80
	StrongScoutRating         = 70
	StrongAcademyExtraPlayers = 1
)

// SeasonEnd is the input of the season-end pass.
type SeasonEnd struct {
	SeasonStartYear int
	Seed            int64
	// Rosters maps team id to squad.
	Rosters map[int][]development.DevelopmentPlayer
	// Contexts maps team id to staff and training; missing teams use
	// development.DefaultContext.
	Contexts map[int]development.DevelopmentContext
	// ManagedTeamID receives an academy intake; 0 means none.
	ManagedTeamID int
}

// SeasonReport is the outcome of the season-end pass.
type SeasonReport struct {
	RunID     uuid.UUID
	Rosters   map[int][]development.DevelopmentPlayer
	Youth     []development.YouthPlayer
	Improved  int
	Declined  int
	Unchanged int
	Retired   int
}

// YouthIntake returns how many academy players a team receives.
func YouthIntake(staff development.StaffProfile) int {
	n := BaseYouthIntake
	if staff.Academy >= StrongAcademyRating && staff.Scout >= StrongScoutRating {
		n += StrongAcademyExtraPlayers
	}
	return n
}

// EndSeason evolves every roster concurrently, one goroutine per team, and
// generates the managed team's academy intake. Each player draws from its own
// stream, so the outcome does not depend on scheduling.
func (s *Service) EndSeason(ctx context.Context, end SeasonEnd) (SeasonReport, error) { //nolint:gocritic // hugeParam: read once
	report := SeasonReport{
		RunID:   uuid.New(),
		Rosters: make(map[int][]development.DevelopmentPlayer, len(end.Rosters)),
	}
	log := s.log().Named("season")
	log.Info(ctx, "season end started",
		logger.String("run_id", report.RunID.String()),
		logger.Int("season", end.SeasonStartYear),
		logger.Int("teams", len(end.Rosters)),
	)

	teamIDs := make([]int, 0, len(end.Rosters))
	for id := range end.Rosters {
		teamIDs = append(teamIDs, id)
	}
	sort.Ints(teamIDs)

	evolved := make([][]development.DevelopmentPlayer, len(teamIDs))
	var wg sync.WaitGroup
	for i, id := range teamIDs {
		i, id := i, id
		wg.Add(1)
		go func() {
			defer wg.Done()
			evolved[i] = s.engine.ApplySeasonGrowth(end.Rosters[id], end.SeasonStartYear, end.Seed, end.developmentContext(id))
		}()
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return SeasonReport{}, fmt.Errorf("season %d: %w", end.SeasonStartYear, err)
	}

	for i, id := range teamIDs {
		report.Rosters[id] = evolved[i]
		tally(&report, end.Rosters[id], evolved[i])
	}

	if end.ManagedTeamID != 0 {
		dc := end.developmentContext(end.ManagedTeamID)
		count := YouthIntake(dc.Staff)
		if err := development.ValidateYouthRequest(end.ManagedTeamID, count); err != nil {
			return SeasonReport{}, fmt.Errorf("season %d academy: %w", end.SeasonStartYear, err)
		}
		report.Youth = s.engine.GenerateYouthPlayers(end.ManagedTeamID, count, end.SeasonStartYear, end.Seed, dc)
	}

	metrics.RecordDevelopment(metrics.DevelopmentOutcome{
		Improved:  report.Improved,
		Declined:  report.Declined,
		Unchanged: report.Unchanged,
		Retired:   report.Retired,
		Youth:     len(report.Youth),
	})
	log.Info(ctx, "season end finished",
		logger.String("run_id", report.RunID.String()),
		logger.Int("improved", report.Improved),
		logger.Int("declined", report.Declined),
		logger.Int("unchanged", report.Unchanged),
		logger.Int("retired", report.Retired),
		logger.Int("youth", len(report.Youth)),
	)
	return report, nil
}

func (e SeasonEnd) developmentContext(teamID int) development.DevelopmentContext { //nolint:gocritic // hugeParam: read once
	if dc, ok := e.Contexts[teamID]; ok {
		return dc
	}
	return development.DefaultContext()
}

// tally classifies each player by the change in attribute total. Players
// already retired before the pass are not counted.
func tally(r *SeasonReport, before, after []development.DevelopmentPlayer) {
	for i := range after {
		if before[i].Status == development.StatusRetired {
			continue
		}
		if after[i].Status == development.StatusRetired {
			r.Retired++
			continue
		}
		switch delta := after[i].Attrs.Total() - before[i].Attrs.Clamp().Total(); {
		case delta > 0:
			r.Improved++
		case delta < 0:
			r.Declined++
		default:
			r.Unchanged++
		}
	}
}

func (s *Service) log() logger.Logger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.logger != nil {
		return s.logger
	}
	return logger.Get().Named("service")
}
