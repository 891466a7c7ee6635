package actionitems

import (
	"fmt"
	"strings"

	ucerrors "github.com/johnquangdev/meeting-actions/internal/usecase/errors"
)

// Strategy names a candidate detection variant
type Strategy string

const (
	// StrategyAuto picks syntactic when a dependency parser is available
	StrategyAuto      Strategy = "auto"
	StrategyKeyword   Strategy = "keyword"
	StrategySyntactic Strategy = "syntactic"
)

// Dedup key lengths per strategy
const (
	keywordDedupLimit   = 120
	syntacticDedupLimit = 160
)

// ParseStrategy converts a configured or requested strategy name. Empty means auto.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", StrategyAuto:
		return StrategyAuto, nil
	case StrategyKeyword:
		return StrategyKeyword, nil
	case StrategySyntactic:
		return StrategySyntactic, nil
	default:
		return "", fmt.Errorf("%w: %q", ucerrors.ErrUnknownStrategy, s)
	}
}

func (s Strategy) String() string {
	return string(s)
}
