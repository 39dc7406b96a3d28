// Package service provides the stats ingestion service implementation
package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"hubtally/internal/platform/logger"
	"hubtally/internal/platform/store"
	"hubtally/internal/services/stats/domain"
	"hubtally/internal/services/stats/guardrails"
	"hubtally/internal/services/stats/keys"
)

// HoursPerDay is the fixed shard fan-out for one calendar day
const HoursPerDay = 24

// contributionKinds are the event types counted toward per-language contributor rankings
var contributionKinds = map[string]bool{
	"IssuesEvent":      true,
	"PullRequestEvent": true,
	"PushEvent":        true,
}

// pushKind gates the pushes-by-language ranking
const pushKind = "PushEvent"

// Config holds configuration options for the stats service
type Config struct {
	// DayTimeout caps one whole orchestrated day; <=0 -> no extra limit
	DayTimeout time.Duration

	// FetchTimeout caps each hour shard download; <=0 -> no extra limit
	FetchTimeout time.Duration

	// StoreTimeout caps the counter batch submission per shard; <=0 -> no extra limit
	StoreTimeout time.Duration
}

// Service implements the stats ingestion service
type Service struct {
	Mirror   domain.MirrorPort
	Reader   domain.ReaderFactory
	Norm     domain.Normalizer
	Counters store.Counters
	Cfg      Config
}

// New constructs the stats service
func New(
	mirror domain.MirrorPort,
	rf domain.ReaderFactory,
	n domain.Normalizer,
	counters store.Counters,
	cfg Config,
) *Service {
	if mirror == nil {
		panic("stats.Service requires a non nil MirrorPort")
	}
	if counters == nil {
		panic("stats.Service requires a non nil Counters seam")
	}
	return &Service{Mirror: mirror, Reader: rf, Norm: n, Counters: counters, Cfg: cfg}
}

// FetchDay ensures all hour shards of the day are mirrored locally.
// All downloads run together and the call returns once every hour has
// resolved. A failed download leaves the shard absent and is not an error;
// downstream treats absence uniformly whether the hour is missing upstream
// or the fetch failed
func (s *Service) FetchDay(ctx context.Context, day domain.DayRef) int {
	tos := guardrails.Timeouts{Fetch: s.Cfg.FetchTimeout}

	var fetched atomic.Int64
	var wg sync.WaitGroup
	for h := range HoursPerDay {
		wg.Add(1)
		go func(hr domain.HourRef) {
			defer wg.Done()
			fctx, cancel := guardrails.ForFetch(ctx, tos)
			defer cancel()
			got, err := s.Mirror.Ensure(fctx, hr)
			if err != nil {
				logger.C(ctx).Debug().Str("hour", hr.String()).Err(err).Msg("stats: shard unavailable")
				return
			}
			if got {
				fetched.Add(1)
			}
		}(day.Hour(h))
	}
	wg.Wait()
	return int(fetched.Load())
}

// ProcessShard streams one mirrored hour file and fans every event out into
// counter updates, submitted as one atomic batch at the end. A store failure
// aborts this shard only; shards already processed keep their counts since
// each shard owns an independent batch
func (s *Service) ProcessShard(ctx context.Context, hr domain.HourRef) (domain.ShardReport, error) {
	start := time.Now()
	rep := domain.ShardReport{Hour: hr}
	file := hr.String() + ".json.gz"

	rc, err := s.Mirror.Open(hr)
	if err != nil {
		return rep, err
	}
	rd, err := s.Reader.New(rc)
	if err != nil {
		return rep, err
	}
	defer func() { _ = rd.Close() }()

	// weekday and hour are structural properties of the shard, derived once
	wd := hr.Weekday()
	hour := hr.Hour

	batch := s.Counters.Batch()
	for {
		env, err := rd.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.Is(err, domain.ErrMalformedLine) {
			rep.Ignored++
			logger.C(ctx).Warn().Str("file", file).Int("line", rd.Line()).Err(err).Msg("stats: skipping malformed line")
			continue
		}
		if err != nil {
			return rep, err
		}

		login := s.Norm.Normalize(env.Actor.Login)
		if login == "" {
			// not attributable, skipped without a per line log
			rep.Ignored++
			continue
		}

		s.score(batch, env, login, wd, hour)
		rep.Scored++
	}

	rep.Updates = batch.Len()
	sctx, cancel := guardrails.ForStore(ctx, guardrails.Timeouts{Store: s.Cfg.StoreTimeout})
	err = batch.Exec(sctx)
	cancel()
	if err != nil {
		return rep, err
	}

	rep.Elapsed = time.Since(start)
	return rep, nil
}

// score queues every counter update for one attributable event.
// All updates are additive and commutative so ordering within the batch
// carries no meaning
func (s *Service) score(b store.Batch, env domain.EventEnvelope, login string, wd, hour int) {
	wdField := keys.Weekday(wd)
	hrField := keys.Hour(hour)
	etype := env.Type
	contribution := contributionKinds[etype]

	// global totals and rankings
	b.IncrBy(keys.EventsTotal, 1)
	b.HIncrBy(keys.EventsWeekday, wdField, 1)
	b.HIncrBy(keys.EventsHour, hrField, 1)
	b.ZIncrBy(keys.RankUsers, login, 1)
	b.ZIncrBy(keys.RankEvents, etype, 1)

	// per type and per user breakdowns
	b.HIncrBy(keys.EventWeekday(etype), wdField, 1)
	b.HIncrBy(keys.EventHour(etype), hrField, 1)
	b.HIncrBy(keys.UserWeekday(login), wdField, 1)
	b.HIncrBy(keys.UserHour(login), hrField, 1)
	b.ZIncrBy(keys.UserEvents(login), etype, 1)
	b.HIncrBy(keys.UserEventWeekday(login, etype), wdField, 1)
	b.HIncrBy(keys.UserEventHour(login, etype), hrField, 1)

	// repository and social sets need a well formed owner/name
	if _, _, ok := env.Repo.Split(); ok {
		repo := env.Repo.Name
		b.ZIncrBy(keys.RankRepos, repo, 1)
		b.ZIncrBy(keys.UserRepos(login), repo, 1)
		b.ZIncrBy(keys.RepoUsers(repo), login, 1)
	}

	// language rankings
	if lang := env.Repo.Language; lang != "" {
		b.ZIncrBy(keys.RankLangs, lang, 1)
		b.ZIncrBy(keys.UserLangs(login), lang, 1)
		if etype == pushKind {
			b.ZIncrBy(keys.RankLangsPush, lang, 1)
		}
		if contribution {
			b.ZIncrBy(keys.LangUsers(lang), login, 1)
		}
	}
}

// RunDay fetches one day and processes every shard found on disk.
// Fewer than 24 cached shards is a warning, not an error; a shard aborted by
// a store failure is recorded and the remaining shards still run
func (s *Service) RunDay(ctx context.Context, day domain.DayRef) (domain.DayReport, error) {
	start := time.Now()
	rep := domain.DayReport{Day: day}
	log := logger.C(ctx)

	// day-scoped budget; never extends the caller's deadline
	ctx, cancel := guardrails.WithDay(ctx, guardrails.Timeouts{Day: s.Cfg.DayTimeout})
	defer cancel()

	rep.Fetched = s.FetchDay(ctx, day)

	hours, err := s.Mirror.CachedHours(day.Year, day.Month, day.Day)
	if err != nil {
		return rep, err
	}
	if len(hours) < HoursPerDay {
		log.Warn().
			Str("day", day.String()).
			Int("cached", len(hours)).
			Int("missing", HoursPerDay-len(hours)).
			Msg("stats: incomplete day, processing cached shards only")
	}

	for _, hr := range hours {
		srep, err := s.ProcessShard(ctx, hr)
		if err != nil {
			if ctx.Err() != nil {
				return rep, ctx.Err()
			}
			rep.Failed++
			log.Error().Str("hour", hr.String()).Err(err).Msg("stats: shard aborted")
			continue
		}
		rep.Shards++
		rep.Scored += srep.Scored
		rep.Ignored += srep.Ignored
		log.Info().
			Str("hour", hr.String()).
			Int("scored", srep.Scored).
			Int("ignored", srep.Ignored).
			Int("updates", srep.Updates).
			Dur("elapsed", srep.Elapsed).
			Msg("stats: shard processed")
	}

	rep.Elapsed = time.Since(start)
	if rep.Failed > 0 {
		return rep, errors.New("some shards failed")
	}
	return rep, nil
}

// RunSince processes every day from start up to but excluding today.
// A failed day is recorded and the loop continues with the next day
func (s *Service) RunSince(ctx context.Context, start domain.DayRef) (domain.RunReport, error) {
	today := domain.NewDayRef(time.Now())
	var rep domain.RunReport

	for day := start; day.UTC().Before(today.UTC()); day = day.Next() {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		rep.Days++
		dayRep, err := s.RunDay(ctx, day)
		if err != nil {
			if ctx.Err() != nil {
				return rep, ctx.Err()
			}
			rep.FailedDays = append(rep.FailedDays, day)
			logger.C(ctx).Error().Str("day", day.String()).Err(err).Msg("stats: day finished with failures")
			continue
		}
		logger.C(ctx).Info().
			Str("day", day.String()).
			Int("shards", dayRep.Shards).
			Int("scored", dayRep.Scored).
			Int("ignored", dayRep.Ignored).
			Dur("elapsed", dayRep.Elapsed).
			Msg("stats: day processed")
	}

	if len(rep.FailedDays) > 0 {
		return rep, errors.New("some days failed")
	}
	return rep, nil
}
