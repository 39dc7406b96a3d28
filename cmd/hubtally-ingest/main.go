package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/google/uuid"

	"hubtally/internal/core/version"
	"hubtally/internal/modkit"
	"hubtally/internal/modkit/module"
	"hubtally/internal/platform/config"
	"hubtally/internal/platform/logger"
	"hubtally/internal/platform/store"
	ptime "hubtally/internal/platform/time"

	statsdom "hubtally/internal/services/stats/domain"
	statsmod "hubtally/internal/services/stats/module"
)

func main() {
	root := config.New()
	rdsCfg := root.Prefix("SERVICE_REDIS_")

	l := logger.Get()
	bi := version.Info()
	l.Info().Str("version", bi.Version).Str("commit", bi.Commit).Msg("hubtally-ingest starting")

	st, err := store.Open(context.Background(), store.Config{
		AppName: "hubtally-ingest",
		RDS: store.RedisConfig{
			Enabled:    true,
			Addr:       rdsCfg.MayString("ADDR", "127.0.0.1:6379"),
			DB:         rdsCfg.MayInt("DB", 0),
			Password:   rdsCfg.MayString("PASSWORD", ""),
			CounterTTL: rdsCfg.MayDuration("COUNTER_TTL", store.DefaultCounterTTL),
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	var (
		fDate  = flag.String("date", "", "process one UTC day YYYY-MM-DD")
		fSince = flag.String("since", "", "backfill every day from YYYY-MM-DD through yesterday")
	)
	flag.Parse()

	if *fDate != "" && *fSince != "" {
		l.Panic().Msg("-date and -since are mutually exclusive")
	}
	parseDay := func(flagName, v string) statsdom.DayRef {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			l.Panic().Err(err).Msgf("bad %s", flagName)
		}
		if !t.Before(ptime.DayUTC(time.Now())) {
			l.Panic().Str(flagName, v).Msg("day must be in the past")
		}
		return statsdom.NewDayRef(t)
	}

	ctx := context.Background()
	if err := st.Guard(ctx); err != nil {
		l.Panic().Err(err).Msg("store not ready")
	}

	deps := modkit.Deps{
		Cfg: root,
		Log: *l,
		RDS: st.RDS,
	}

	sm := statsmod.New(deps)
	module.Register(sm.Name(), sm.Ports())
	runner := sm.Ports().(statsmod.Ports).Runner

	switch {
	case *fSince != "":
		start := parseDay("-since", *fSince)
		ctx = logger.WithRun(ctx, uuid.NewString(), start.String())
		rep, err := runner.RunSince(ctx, start)
		if err != nil {
			l.Error().Err(err).Int("days", rep.Days).Any("failed_days", rep.FailedDays).Msg("backfill finished with failures")
			os.Exit(1)
		}
		l.Info().Int("days", rep.Days).Msg("backfill complete")

	default:
		day := statsdom.NewDayRef(ptime.YesterdayUTC())
		if *fDate != "" {
			day = parseDay("-date", *fDate)
		}
		ctx = logger.WithRun(ctx, uuid.NewString(), day.String())
		rep, err := runner.RunDay(ctx, day)
		if err != nil {
			l.Error().Err(err).Str("day", day.String()).Int("failed_shards", rep.Failed).Msg("day finished with failures")
			os.Exit(1)
		}
		l.Info().
			Str("day", day.String()).
			Int("shards", rep.Shards).
			Int("scored", rep.Scored).
			Int("ignored", rep.Ignored).
			Dur("elapsed", rep.Elapsed).
			Msg("day complete")
	}
}
