package module

import (
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"hubtally/internal/platform/config"
	perr "hubtally/internal/platform/errors"
)

// Options holds configuration options for the stats service
type Options struct {
	// DayTimeout caps one whole orchestrated day; zero disables the budget
	DayTimeout time.Duration `validate:"min=0"`

	// FetchTimeout caps one hour shard download
	FetchTimeout time.Duration `validate:"min=0"`

	// StoreTimeout caps one counter batch submission
	StoreTimeout time.Duration `validate:"min=0"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// FromConfig reads the stats options from config with CORE_STATS_ prefix.
// Options that fail validation panic at wiring time, matching the Must
// accessors of the config layer
func FromConfig(cfg config.Conf) Options {
	st := cfg.Prefix("CORE_STATS_")
	o := Options{
		DayTimeout:   st.MayDuration("DAY_TIMEOUT", 0),
		FetchTimeout: st.MayDuration("FETCH_TIMEOUT", 10*time.Minute),
		StoreTimeout: st.MayDuration("STORE_TIMEOUT", time.Minute),
	}
	validateOnce.Do(func() { validate = validator.New(validator.WithRequiredStructEnabled()) })
	if err := validate.Struct(o); err != nil {
		panic(perr.Wrap(err, perr.ErrorCodeValidation, "invalid CORE_STATS_ options"))
	}
	return o
}
