package service

import (
	"context"
	"fmt"

	"github.com/icami12/ControlCash/internal/model"
)

// ProfileByChatID busca el perfil vinculado a un chat de Telegram
func (s *Processor) ProfileByChatID(ctx context.Context, chatID int64) (*model.Profile, error) {
	return s.repo.GetProfileByChatID(ctx, chatID)
}

// LinkProfile vincula un chat de Telegram usando el código generado en la
// web. El código se consume: queda inutilizable después de vincular.
func (s *Processor) LinkProfile(ctx context.Context, code string, chatID int64) (*model.Profile, error) {
	perfil, err := s.repo.GetProfileByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	perfil.TelegramChatID = chatID
	perfil.TelegramCode = ""
	if err := s.repo.SaveProfile(ctx, perfil); err != nil {
		return nil, fmt.Errorf("guardar vínculo: %w", err)
	}

	return perfil, nil
}
