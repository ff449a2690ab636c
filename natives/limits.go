package natives

import (
	"math"

	"github.com/pkg/errors"
)

const (
	// MaxSecurity is the largest discriminant size, in bits, accepted by
	// Verify.
	MaxSecurity uint64 = 2048
	// MaxWesolowskiDifficulty is the global difficulty ceiling, and the
	// Wesolowski target.
	MaxWesolowskiDifficulty uint64 = 3_000_000_001
	// MaxPietrzakDifficulty is the tighter ceiling for Pietrzak proofs, whose
	// verification cost grows faster with difficulty.
	MaxPietrzakDifficulty uint64 = 900_000_000
)

// checkLimits applies the ceilings in order. The Wesolowski branch repeats the
// global difficulty check.
func checkLimits(difficulty, security uint64, useWesolowski bool) error {
	if security > MaxSecurity || difficulty > MaxWesolowskiDifficulty {
		return errors.Wrapf(
			ErrResourceLimitExceeded,
			"security %d, difficulty %d",
			security,
			difficulty,
		)
	}

	if useWesolowski {
		if difficulty > MaxWesolowskiDifficulty {
			return errors.Wrapf(
				ErrResourceLimitExceeded,
				"wesolowski difficulty %d",
				difficulty,
			)
		}
	} else {
		if difficulty > MaxPietrzakDifficulty {
			return errors.Wrapf(
				ErrResourceLimitExceeded,
				"pietrzak difficulty %d",
				difficulty,
			)
		}
	}

	return nil
}

// narrowSecurity converts security to the scheme's 16-bit parameter, rejecting
// values that do not fit instead of wrapping.
func narrowSecurity(security uint64) (uint16, error) {
	if security > math.MaxUint16 {
		return 0, errors.Wrapf(
			ErrResourceLimitExceeded,
			"security %d does not fit in 16 bits",
			security,
		)
	}

	return uint16(security), nil
}
