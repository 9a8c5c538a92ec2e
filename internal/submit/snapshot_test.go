package submit

import (
	"strconv"
	"testing"
	"time"

	"github.com/nftfolio/batch-lister/internal/listing"
	"github.com/nftfolio/batch-lister/pkg/types"
)

var (
	testETH = types.Currency{
		Contract: "0x0000000000000000000000000000000000000000",
		Symbol:   "ETH",
		Decimals: 18,
	}
	testWETH = types.Currency{
		Contract: "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2",
		Symbol:   "WETH",
		Decimals: 18,
	}
)

func testListing(tokenID, price string, quantity int) listing.CandidateListing {
	return listing.CandidateListing{
		Token: types.Token{
			Contract:   "0xabc",
			TokenID:    tokenID,
			Kind:       "erc1155",
			Name:       "Token #" + tokenID,
			OwnedCount: 10,
		},
		Price:            price,
		Quantity:         quantity,
		ExpirationOption: types.ExpirationOption{Value: "none"},
		Orderbook:        "reservoir",
		OrderKind:        "seaport-v1.4",
	}
}

func TestBuildSnapshot_MinorUnits(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		quantity int
		want     string
	}{
		{"whole", "1", 1, "1000000000000000000"},
		{"fractional_times_quantity", "1.5", 2, "3000000000000000000"},
		{"minimum_price", "0.000001", 1, "1000000000000"},
		{"many_digits", "0.123456789012345678", 1, "123456789012345678"},
		{"large", "1234.5", 3, "3703500000000000000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := BuildSnapshot(
				[]listing.CandidateListing{testListing("1", tt.price, tt.quantity)},
				testETH,
				time.Now(),
			)
			if err != nil {
				t.Fatalf("BuildSnapshot() error = %v", err)
			}

			if got := snap.Entries[0].Payload.WeiPrice; got != tt.want {
				t.Errorf("WeiPrice = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestBuildSnapshot_InvalidPrice(t *testing.T) {
	_, err := BuildSnapshot(
		[]listing.CandidateListing{testListing("1", "not-a-number", 1)},
		testETH,
		time.Now(),
	)
	if err == nil {
		t.Error("expected error for unparseable price")
	}
}

func TestBuildSnapshot_Expiration(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	l := testListing("1", "1", 1)
	l.ExpirationOption = types.ExpirationOption{
		Text:             "1 Day",
		Value:            "1d",
		RelativeTime:     1,
		RelativeTimeUnit: types.UnitDay,
	}

	snap, err := BuildSnapshot([]listing.CandidateListing{l}, testETH, now)
	if err != nil {
		t.Fatalf("BuildSnapshot() error = %v", err)
	}

	wantUnix := now.AddDate(0, 0, 1).Unix()
	if got := snap.Entries[0].Payload.ExpirationTime; got != strconv.FormatInt(wantUnix, 10) {
		t.Errorf("ExpirationTime = %s, want %d", got, wantUnix)
	}
}

func TestBuildSnapshot_NoExpiration(t *testing.T) {
	snap, err := BuildSnapshot(
		[]listing.CandidateListing{testListing("1", "1", 1)},
		testETH,
		time.Now(),
	)
	if err != nil {
		t.Fatalf("BuildSnapshot() error = %v", err)
	}

	if got := snap.Entries[0].Payload.ExpirationTime; got != "" {
		t.Errorf("ExpirationTime = %s, want empty", got)
	}
}

func TestBuildSnapshot_Currency(t *testing.T) {
	// Native currency: contract omitted
	snap, err := BuildSnapshot(
		[]listing.CandidateListing{testListing("1", "1", 1)},
		testETH,
		time.Now(),
	)
	if err != nil {
		t.Fatalf("BuildSnapshot() error = %v", err)
	}
	if got := snap.Entries[0].Payload.Currency; got != "" {
		t.Errorf("native Currency = %s, want empty", got)
	}

	// ERC-20 currency: contract included
	snap, err = BuildSnapshot(
		[]listing.CandidateListing{testListing("1", "1", 1)},
		testWETH,
		time.Now(),
	)
	if err != nil {
		t.Fatalf("BuildSnapshot() error = %v", err)
	}
	if got := snap.Entries[0].Payload.Currency; got != testWETH.Contract {
		t.Errorf("Currency = %s, want %s", got, testWETH.Contract)
	}
}

func TestSnapshot_Payloads(t *testing.T) {
	snap, err := BuildSnapshot(
		[]listing.CandidateListing{
			testListing("1", "1", 1),
			testListing("2", "2", 1),
		},
		testETH,
		time.Now(),
	)
	if err != nil {
		t.Fatalf("BuildSnapshot() error = %v", err)
	}

	payloads := snap.Payloads()
	if len(payloads) != 2 {
		t.Fatalf("payloads = %d, want 2", len(payloads))
	}
	if payloads[0].Token != "0xabc:1" || payloads[1].Token != "0xabc:2" {
		t.Errorf("payload order not preserved: %s, %s", payloads[0].Token, payloads[1].Token)
	}
}
