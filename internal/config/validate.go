package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlmodel"
)

var (
	// ErrInvalidChunkSize indicates invalid chunk size configuration
	ErrInvalidChunkSize = errors.New("invalid chunk size")

	// ErrInvalidOverlap indicates invalid overlap configuration
	ErrInvalidOverlap = errors.New("invalid overlap")

	// ErrInvalidThreshold indicates an out-of-range confidence threshold
	ErrInvalidThreshold = errors.New("invalid confidence threshold")

	// ErrInvalidSizeLimit indicates a negative parser size limit
	ErrInvalidSizeLimit = errors.New("invalid parser size limit")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validateChunking(&cfg.Chunking); err != nil {
		errs = append(errs, err)
	}
	if err := validateHandlers(&cfg.Handlers); err != nil {
		errs = append(errs, err)
	}
	if err := validateParser(&cfg.Parser); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}
	return nil
}

func validateChunking(cfg *xmlmodel.ChunkingConfig) error {
	var errs []error

	if cfg.MaxChunkSize <= 0 {
		errs = append(errs, fmt.Errorf("%w: max_chunk_size must be positive, got %d", ErrInvalidChunkSize, cfg.MaxChunkSize))
	}
	if cfg.MinChunkSize <= 0 {
		errs = append(errs, fmt.Errorf("%w: min_chunk_size must be positive, got %d", ErrInvalidChunkSize, cfg.MinChunkSize))
	}
	if cfg.MaxChunkSize > 0 && cfg.MinChunkSize > cfg.MaxChunkSize {
		errs = append(errs, fmt.Errorf("%w: min_chunk_size (%d) cannot exceed max_chunk_size (%d)", ErrInvalidChunkSize, cfg.MinChunkSize, cfg.MaxChunkSize))
	}
	if cfg.OverlapSize < 0 {
		errs = append(errs, fmt.Errorf("%w: overlap_size cannot be negative, got %d", ErrInvalidOverlap, cfg.OverlapSize))
	}
	if cfg.MaxChunkSize > 0 && cfg.OverlapSize >= cfg.MaxChunkSize {
		errs = append(errs, fmt.Errorf("%w: overlap_size (%d) should be less than max_chunk_size (%d)", ErrInvalidOverlap, cfg.OverlapSize, cfg.MaxChunkSize))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}
	return nil
}

func validateHandlers(cfg *HandlersConfig) error {
	if cfg.ConfidenceThreshold < 0 || cfg.ConfidenceThreshold > 1 {
		return fmt.Errorf("%w: must be in [0,1], got %.2f", ErrInvalidThreshold, cfg.ConfidenceThreshold)
	}
	return nil
}

func validateParser(cfg *ParserConfig) error {
	if cfg.MaxFileSizeMB < 0 {
		return fmt.Errorf("%w: max_file_size_mb cannot be negative, got %.2f", ErrInvalidSizeLimit, cfg.MaxFileSizeMB)
	}
	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}

	format := "validation failed:" + strings.Repeat("\n  - %w", len(errs))
	args := make([]interface{}, len(errs))
	for i, err := range errs {
		args[i] = err
	}
	return fmt.Errorf(format, args...)
}
