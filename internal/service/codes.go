package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"

	"tarra_waitlist/internal/repository"
)

// codeAlphabet drops visually ambiguous characters (0/O, 1/I/l). 32^5 codes
// keep the collision probability negligible at campus scale while the code
// stays easy to type and share.
const (
	codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	codeLength   = 5
)

type CodeGenerator struct {
	repo ParticipantRepository
	draw func() (string, error)
}

func NewCodeGenerator(repo ParticipantRepository) *CodeGenerator {
	return &CodeGenerator{
		repo: repo,
		draw: randomCode,
	}
}

// Issue draws codes until one is free in the store. The retry is unbounded;
// the alphabet and length make a second collision in a row vanishingly rare.
func (g *CodeGenerator) Issue(ctx context.Context) (string, error) {
	for {
		code, err := g.draw()
		if err != nil {
			return "", fmt.Errorf("failed to draw code: %w", err)
		}

		_, err = g.repo.GetParticipantByCode(ctx, code)
		if errors.Is(err, repository.ErrNotFound) {
			return code, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check code collision: %w", err)
		}
	}
}

func randomCode() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	code := make([]byte, codeLength)
	for i, b := range buf {
		// alphabet length is a power of two, so the modulo stays unbiased
		code[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}

	return string(code), nil
}
