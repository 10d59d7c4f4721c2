package dataaggregator

import (
	"context"
	"errors"
	"reflect"

	"github.com/rs/zerolog/log"
	"github.com/travigo/routecost/pkg/dataaggregator/source"
)

var ErrNoMatchingSource = errors.New("failed to find a matching data source for type")

// Aggregator holds an ordered chain of sources. A lookup is answered by the first
// supporting source that does not reject the query as unsupported.
type Aggregator struct {
	Sources []DataSource
}

func (a *Aggregator) RegisterSource(source DataSource) {
	a.Sources = append(a.Sources, source)

	log.Debug().Str("name", source.GetName()).Msg("Registering new Data Source")
}

func Lookup[T any](ctx context.Context, a *Aggregator, query any) (T, error) {
	var empty T

	lookupType := reflect.TypeOf(*new(T))
	if lookupType != nil && lookupType.Kind() == reflect.Pointer {
		lookupType = lookupType.Elem()
	}

	for _, dataSource := range a.Sources {
		matches := false

		for _, supportedType := range dataSource.Supports() {
			if lookupType == supportedType {
				matches = true
				break
			}
		}

		if !matches {
			continue
		}

		returnValue, err := dataSource.Lookup(ctx, query)
		if errors.Is(err, source.UnsupportedSourceError) {
			log.Debug().Str("name", dataSource.GetName()).Msg("Data Source passed on query")
			continue
		}

		if returnValue == nil {
			return empty, err
		}

		value, ok := returnValue.(T)
		if !ok {
			return empty, errors.New("data source returned unexpected type")
		}

		return value, err
	}

	return empty, ErrNoMatchingSource
}
