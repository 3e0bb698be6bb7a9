package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"slices"
	"strings"
)

var ErrInvalidSignature = errors.New("invalid payment notification signature")

// fields a delivery must sign for its signature to mean anything
var mustSign = []string{FieldTranID, FieldValID, FieldAmount, FieldStatus}

// Signer computes HMAC-SHA256 over the sorted key=value pairs a delivery
// declares in verify_key.
type Signer struct {
	secret []byte
}

func NewSigner(secret string) Signer {
	return Signer{secret: []byte(secret)}
}

func SignedKeys(verifyKey string) []string {
	var keys []string
	for _, k := range strings.Split(verifyKey, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return slices.Compact(keys)
}

func (s Signer) Sign(fields map[string]string, keys []string) string {
	sorted := slices.Clone(keys)
	slices.Sort(sorted)

	pairs := make([]string, 0, len(sorted))
	for _, k := range sorted {
		pairs = append(pairs, k+"="+fields[k])
	}

	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(strings.Join(pairs, "&")))
	return hex.EncodeToString(mac.Sum(nil))
}

func (s Signer) Verify(fields map[string]string) error {
	delivered := strings.ToLower(strings.TrimSpace(fields[FieldVerifySign]))
	keys := SignedKeys(fields[FieldVerifyKey])
	if delivered == "" || len(keys) == 0 {
		return ErrInvalidSignature
	}
	for _, k := range mustSign {
		if !slices.Contains(keys, k) {
			return ErrInvalidSignature
		}
	}

	expected := s.Sign(fields, keys)
	if !hmac.Equal([]byte(expected), []byte(delivered)) {
		return ErrInvalidSignature
	}
	return nil
}
