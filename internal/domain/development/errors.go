package development

import (
	"errors"
	"fmt"
)

// Sentinel kinds for development request errors.
var (
	ErrInvalidTeamSlot = errors.New("invalid team slot")
	ErrInvalidCount    = errors.New("invalid youth count")
)

// ValidateYouthRequest reports why GenerateYouthPlayers would return no players.
func ValidateYouthRequest(teamSlotID, count int) error {
	if teamSlotID <= 0 {
		return fmt.Errorf("team slot %d: %w", teamSlotID, ErrInvalidTeamSlot)
	}
	if count <= 0 {
		return fmt.Errorf("count %d: %w", count, ErrInvalidCount)
	}
	return nil
}
