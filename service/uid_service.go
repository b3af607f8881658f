package service

import (
	"context"
	"fmt"

	"github.com/sony/sonyflake"
)

type sonyflakeUID struct {
	flake *sonyflake.Sonyflake
}

func (s *sonyflakeUID) NewUID(ctx context.Context) (uint64, error) {
	id, err := s.flake.NextID()
	if err != nil {
		return 0, fmt.Errorf("next sonyflake id: %w", err)
	}

	return id, nil
}

func NewSonyflakeUID(flake *sonyflake.Sonyflake) *sonyflakeUID {
	return &sonyflakeUID{
		flake: flake,
	}
}
