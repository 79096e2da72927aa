package oauth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultStateTTL is how long an issued state stays acceptable
const DefaultStateTTL = 300 * time.Second

var stateEncoding = base64.RawURLEncoding

// StateData represents OAuth state information
type StateData struct {
	Provider  string `json:"provider"`
	Next      string `json:"next,omitempty"`
	Timestamp int64  `json:"ts"`
	Nonce     string `json:"nonce"`
}

// StateManager manages OAuth state parameters
type StateManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// StateOption configures a StateManager
type StateOption func(*StateManager)

// WithStateClock sets the time source used for issuing and expiry
func WithStateClock(now func() time.Time) StateOption {
	return func(sm *StateManager) {
		if now != nil {
			sm.now = now
		}
	}
}

// WithStateTTL overrides DefaultStateTTL
func WithStateTTL(ttl time.Duration) StateOption {
	return func(sm *StateManager) {
		if ttl > 0 {
			sm.ttl = ttl
		}
	}
}

// NewStateManager creates a new state manager
func NewStateManager(secret string, opts ...StateOption) *StateManager {
	sm := &StateManager{
		secret: []byte(secret),
		ttl:    DefaultStateTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(sm)
	}
	return sm
}

// GenerateState returns a signed state value for provider
func (sm *StateManager) GenerateState(provider, next string) (string, error) {
	data := &StateData{
		Provider:  provider,
		Next:      next,
		Timestamp: sm.now().Unix(),
		Nonce:     uuid.NewString(),
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return "", err
	}

	payload := stateEncoding.EncodeToString(jsonData)
	return payload + "." + stateEncoding.EncodeToString(sm.sign(payload)), nil
}

// ParseState verifies the signature and age of state
func (sm *StateManager) ParseState(state string) (*StateData, error) {
	payload, sig, ok := strings.Cut(state, ".")
	if !ok {
		return nil, ErrInvalidState
	}
	got, err := stateEncoding.DecodeString(sig)
	if err != nil || !hmac.Equal(got, sm.sign(payload)) {
		return nil, ErrInvalidState
	}

	jsonData, err := stateEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrInvalidState
	}
	var data StateData
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, errors.Join(ErrInvalidState, err)
	}

	age := sm.now().Unix() - data.Timestamp
	if age > int64(sm.ttl/time.Second) || age < -60 {
		return nil, ErrStateExpired
	}

	return &data, nil
}

func (sm *StateManager) sign(payload string) []byte {
	mac := hmac.New(sha256.New, sm.secret)
	mac.Write([]byte(payload))
	return mac.Sum(nil)
}
