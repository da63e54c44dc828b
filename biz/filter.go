package biz

import (
	slog "github.com/vearne/simplelog"

	"github.com/vearne/grpcsniff/classifier"
	"github.com/vearne/grpcsniff/config"
	"github.com/vearne/grpcsniff/filter"
)

func NewFilterChain(settings *config.AppSettings) (filter.Filter, error) {
	c := filter.NewFilterChain()

	if len(settings.IncludeVerdict) > 0 {
		f, err := filter.NewVerdictIncludeFilter(settings.IncludeVerdict)
		if err != nil {
			return nil, err
		}
		c.AddIncludeFilter(f)
	}
	if len(settings.IncludeConnMatch) > 0 {
		f, err := filter.NewConnMatchIncludeFilter(settings.IncludeConnMatch)
		if err != nil {
			return nil, err
		}
		c.AddIncludeFilter(f)
	}

	if settings.ExcludeUndetermined {
		c.AddExcludeFilter(filter.NewVerdictExcludeFilter(classifier.Undetermined.String()))
	}
	if settings.ExcludeEmptyPayload {
		c.AddExcludeFilter(filter.EmptyPayloadExcludeFilter)
	}
	slog.Debug("FilterChain, filters:%v", c.Len())
	return c, nil
}
