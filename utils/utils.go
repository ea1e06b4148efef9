package utils

import (
	"crypto/rand"
	"log"
	"math/big"
	"time"
)

// GenerateOTP generates a fixed-length numeric code from a
// cryptographically-sufficient random source.
func GenerateOTP(length int) (string, error) {
	if length <= 0 {
		length = 6
	}
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = '0' + byte(n.Int64())
	}
	return string(digits), nil
}

// deliveryTimeout bounds how long an out-of-band delivery (email, SMS) may
// run. The HTTP request that triggered the delivery never waits on it.
const deliveryTimeout = 15 * time.Second

// DispatchAsync runs a delivery in the background. A failure is logged and
// never propagated to the request that triggered it.
func DispatchAsync(what string, send func() error) {
	go func() {
		done := make(chan error, 1)
		go func() { done <- send() }()
		select {
		case err := <-done:
			if err != nil {
				log.Printf("Delivery failed (%s): %v", what, err)
			}
		case <-time.After(deliveryTimeout):
			log.Printf("Delivery timed out (%s)", what)
		}
	}()
}
