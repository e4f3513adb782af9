package common

import (
	"context"
	"errors"
	"fmt"

	"github.com/snektrials/backend/internal/repository"
	"github.com/snektrials/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
)

type GlobalRoleVerifier struct {
	playerRepo repository.PlayerRepository
}

func NewGlobalRoleVerifier(playerRepo repository.PlayerRepository) *GlobalRoleVerifier {
	return &GlobalRoleVerifier{playerRepo: playerRepo}
}

func (verifier *GlobalRoleVerifier) Verify(ctx context.Context, requiredRoles ...string) error {
	playerID := xcontext.RequestUserID(ctx)
	player, err := verifier.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return fmt.Errorf("player is not valid")
	}

	if !slices.Contains(requiredRoles, player.Role) {
		return errors.New("player role does not have permission")
	}

	return nil
}
