package gameday

import (
	"strings"

	apperrors "railbird/internal/errors"
)

// gameNames is the fixed mapping from a game type's machine name to the
// label players see. The schedule only ever references these codes; a code
// missing here is a configuration error and must surface, not render blank.
var gameNames = map[string]string{
	"1_2_300_max":    "1/2 NLH ($300 max)",
	"1_3_500_max":    "1/3 NLH ($500 max)",
	"2_5_nlh":        "2/5 NLH (uncapped)",
	"2_5_plo":        "2/5 PLO ($800 max)",
	"nlh_tournament": "NLH Tournament ($150 buy-in)",
	"plo_tournament": "PLO Tournament ($250 buy-in)",
}

// DisplayName returns the display label for a game type machine name.
// Unrecognized codes return ErrUnknownGameType.
func DisplayName(gameType string) (string, error) {
	name, ok := gameNames[gameType]
	if !ok {
		return "", apperrors.ErrUnknownGameType
	}
	return name, nil
}

// IsTournament reports whether a game type is a tournament. Matches the
// "Tournament" marker in either the machine name or the display label.
func IsTournament(gameType string) bool {
	if strings.Contains(gameType, "Tournament") || strings.Contains(gameType, "tournament") {
		return true
	}
	if name, err := DisplayName(gameType); err == nil {
		return strings.Contains(name, "Tournament")
	}
	return false
}
