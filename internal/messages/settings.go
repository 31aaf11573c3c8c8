// Package messages builds the XML trees of the supported ISO 20022
// messages (pacs.008, pacs.028, admi.004) and of the business application
// header (head.001) from JSON payloads.
//
// Builders never read configuration themselves; a Generator is created
// with explicit Settings and, for tests, an injected clock and id source.
package messages

import (
	"crypto/rand"
	"math/big"
	"time"

	"fjacquet/iso20022-gen/internal/models"

	"github.com/google/uuid"
)

// Default header values used when no configuration is supplied.
const (
	DefaultRoutingNumber          = "021151080"
	DefaultBusinessService        = models.EnvironmentTest
	DefaultMarketPracticeRegistry = "www2.swift.com/mystandards/#/group/Federal_Reserve_Financial_Services/Fedwire_Funds_Service"
	DefaultMarketPracticeID       = "frb.fedwire.01"
)

// Settings are the installation-wide values that end up in every header.
type Settings struct {
	// RoutingNumber is the ABA of the Fed service; it stands in for a
	// missing sender or receiver.
	RoutingNumber          string
	BusinessService        string
	MarketPracticeRegistry string
	MarketPracticeID       string
}

// DefaultSettings returns the Fedwire test-environment defaults.
func DefaultSettings() Settings {
	return Settings{
		RoutingNumber:          DefaultRoutingNumber,
		BusinessService:        DefaultBusinessService,
		MarketPracticeRegistry: DefaultMarketPracticeRegistry,
		MarketPracticeID:       DefaultMarketPracticeID,
	}
}

// Clock returns the current time.
type Clock func() time.Time

// IDSource produces the random identifiers carried by generated messages.
type IDSource interface {
	// UETR returns a unique end-to-end transaction reference (UUID v4).
	UETR() string
	// Alphanumeric returns n random characters from [A-Za-z0-9].
	Alphanumeric(n int) string
}

const alphanumerics = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

type randomIDs struct{}

func (randomIDs) UETR() string {
	return uuid.NewString()
}

func (randomIDs) Alphanumeric(n int) string {
	out := make([]byte, n)
	limit := big.NewInt(int64(len(alphanumerics)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			// crypto/rand does not fail on supported platforms
			panic(err)
		}
		out[i] = alphanumerics[idx.Int64()]
	}
	return string(out)
}

// RandomIDs is the production IDSource.
func RandomIDs() IDSource {
	return randomIDs{}
}
