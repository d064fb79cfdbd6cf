package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// HMACSignatureService implements ports.SignatureService using HMAC-SHA256.
type HMACSignatureService struct{}

// NewHMACSignatureService creates a new HMAC-SHA256 signature service.
func NewHMACSignatureService() *HMACSignatureService {
	return &HMACSignatureService{}
}

// Sign computes HMAC-SHA256 of payload using secretKey.
// Returns lowercase hex-encoded signature.
func (s *HMACSignatureService) Sign(secretKey string, payload string) string {
	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks if signature matches HMAC-SHA256(secretKey, payload) in
// constant time.
func (s *HMACSignatureService) Verify(secretKey string, payload string, signature string) bool {
	expected := s.Sign(secretKey, payload)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// CanonicalEvent builds the string an event producer signs.
// Format: TIMESTAMP|EVENT_ID|BODY
func CanonicalEvent(timestamp int64, eventID string, body string) string {
	return fmt.Sprintf("%d|%s|%s", timestamp, eventID, body)
}

// BuildCanonicalString implements ports.SignatureService with CanonicalEvent.
func (s *HMACSignatureService) BuildCanonicalString(timestamp int64, eventID string, body string) string {
	return CanonicalEvent(timestamp, eventID, body)
}
