package utils

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const otpTTL = 5 * time.Minute

// GenerateSecureOTP generates a secure random OTP of the specified length.
// It returns a base32 encoded string (without padding) truncated to the desired length.
func GenerateSecureOTP(length int) (string, error) {
	numBytes := (length*5 + 7) / 8
	randomBytes := make([]byte, numBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	otp := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes)
	if len(otp) > length {
		otp = otp[:length]
	}
	return otp, nil
}

// StoreOTP generates a 6-character OTP for the user and stores it in Redis
// with a 5-minute TTL. The caller is responsible for delivering it.
func StoreOTP(userID string) (string, error) {
	otp, err := GenerateSecureOTP(6)
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP: %w", err)
	}

	ctx := context.Background()
	key := fmt.Sprintf("otp:%s", userID)
	if err := GetOTPCacheClient().Set(ctx, key, otp, otpTTL).Err(); err != nil {
		GetLogger().Error("Failed to cache OTP", zap.Error(err))
		return "", fmt.Errorf("failed to store OTP")
	}
	return otp, nil
}

// VerifyOTP retrieves the stored OTP and compares it to the provided one.
// On match the OTP is deleted from the cache.
func VerifyOTP(userID, providedOTP string) error {
	ctx := context.Background()
	key := fmt.Sprintf("otp:%s", userID)

	storedOTP, err := GetOTPCacheClient().Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return fmt.Errorf("OTP not found or expired")
		}
		return fmt.Errorf("failed to retrieve OTP: %w", err)
	}

	if storedOTP != providedOTP {
		return fmt.Errorf("OTP does not match")
	}

	if err := GetOTPCacheClient().Del(ctx, key).Err(); err != nil {
		GetLogger().Error("Failed to delete OTP after verification", zap.Error(err))
	}
	return nil
}
