package listing

import (
	"strconv"
	"sync"

	"github.com/nftfolio/batch-lister/pkg/types"
	"go.uber.org/zap"
)

// MinimumListingPrice is the smallest tradeable unit price, in the settlement
// currency's display units. Rows below it block submission.
const MinimumListingPrice = 0.000001

// Key identifies a candidate listing: one row per (token, orderbook) pair.
type Key struct {
	Token     string // "contract:tokenId"
	Orderbook string
}

// CandidateListing is one row of the working set.
type CandidateListing struct {
	Token            types.Token            `json:"token"`
	Price            string                 `json:"price"` // decimal string, display units
	Quantity         int                    `json:"quantity"`
	ExpirationOption types.ExpirationOption `json:"expiration_option"`
	Orderbook        string                 `json:"orderbook"`
	OrderKind        string                 `json:"order_kind"`
	FeeBps           int                    `json:"fee_bps,omitempty"`         // 0 until the fee oracle resolves it
	MarketplaceFee   float64                `json:"marketplace_fee,omitempty"` // computed amount, display units
}

// Key returns the row's identity key.
func (l CandidateListing) Key() Key {
	return Key{Token: l.Token.Key(), Orderbook: l.Orderbook}
}

// Notifier delivers one-shot user notices raised by the builder, such as a
// row being evicted because its collection disallows listing.
type Notifier interface {
	Notify(title, description string)
}

// Builder maintains the working set of candidate listings and the shared
// pricing context. All methods are safe for concurrent use; fee quotes arrive
// from resolver goroutines while the host edits rows.
type Builder struct {
	mu       sync.Mutex
	logger   *zap.Logger
	notifier Notifier

	catalog    []types.Marketplace
	currencies []types.Currency

	selectedItems        []types.Token
	selectedMarketplaces []types.Marketplace
	listings             []CandidateListing

	globalPrice      string
	globalExpiration types.ExpirationOption
	currency         types.Currency
}

// Config holds builder configuration.
type Config struct {
	Logger     *zap.Logger
	Catalog    []types.Marketplace // full marketplace catalog; first entry selected initially
	Currencies []types.Currency    // currency catalog; first entry is the default
	Notifier   Notifier
}

// New creates a builder with the first catalog marketplace selected, the
// default expiration policy, and the default currency.
func New(cfg *Config) *Builder {
	b := &Builder{
		logger:           cfg.Logger,
		notifier:         cfg.Notifier,
		catalog:          cfg.Catalog,
		currencies:       cfg.Currencies,
		globalExpiration: types.DefaultExpirationOption(),
	}

	if len(cfg.Catalog) > 0 {
		b.selectedMarketplaces = []types.Marketplace{cfg.Catalog[0]}
	}
	if len(cfg.Currencies) > 0 {
		b.currency = cfg.Currencies[0]
	}

	return b
}

// SetSelectedItems replaces the selected-items set and rebuilds the working
// set as the cross product of items and selected marketplaces. Per-row edits
// made before the change are discarded.
func (b *Builder) SetSelectedItems(items []types.Token) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.selectedItems = append([]types.Token(nil), items...)
	b.regenerateLocked()
}

// SelectedItems returns a copy of the current selection.
func (b *Builder) SelectedItems() []types.Token {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]types.Token(nil), b.selectedItems...)
}

// SelectedMarketplaces returns a copy of the selected marketplace set.
func (b *Builder) SelectedMarketplaces() []types.Marketplace {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]types.Marketplace(nil), b.selectedMarketplaces...)
}

// Listings returns a copy of the working set in display order.
func (b *Builder) Listings() []CandidateListing {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]CandidateListing(nil), b.listings...)
}

// Catalog returns the full marketplace catalog.
func (b *Builder) Catalog() []types.Marketplace {
	return append([]types.Marketplace(nil), b.catalog...)
}

// Currencies returns the currency catalog. The first entry is the default.
func (b *Builder) Currencies() []types.Currency {
	return append([]types.Currency(nil), b.currencies...)
}

// MarketplaceFor resolves a selected marketplace by orderbook identifier.
func (b *Builder) MarketplaceFor(orderbook string) (types.Marketplace, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.marketplaceForLocked(orderbook)
}

func (b *Builder) marketplaceForLocked(orderbook string) (types.Marketplace, bool) {
	for _, m := range b.selectedMarketplaces {
		if m.Orderbook == orderbook {
			return m, true
		}
	}
	for _, m := range b.catalog {
		if m.Orderbook == orderbook {
			return m, true
		}
	}
	return types.Marketplace{}, false
}

// ToggleMarketplace flips a marketplace's selection. Toggling on adds one row
// per selected item for that marketplace only, skipping items that already
// have one; toggling off removes exactly that marketplace's rows.
func (b *Builder) ToggleMarketplace(marketplace types.Marketplace) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, selected := range b.selectedMarketplaces {
		if selected.Orderbook == marketplace.Orderbook {
			b.selectedMarketplaces = append(
				b.selectedMarketplaces[:i],
				b.selectedMarketplaces[i+1:]...,
			)
			b.removeMarketplaceRowsLocked(marketplace.Orderbook)
			b.logger.Debug("marketplace-deselected", zap.String("orderbook", marketplace.Orderbook))
			return
		}
	}

	b.selectedMarketplaces = append(b.selectedMarketplaces, marketplace)
	b.addMarketplaceRowsLocked(marketplace)
	b.logger.Debug("marketplace-selected", zap.String("orderbook", marketplace.Orderbook))
}

func (b *Builder) removeMarketplaceRowsLocked(orderbook string) {
	kept := b.listings[:0]
	for _, l := range b.listings {
		if l.Orderbook != orderbook {
			kept = append(kept, l)
		}
	}
	b.listings = kept
}

func (b *Builder) addMarketplaceRowsLocked(marketplace types.Marketplace) {
	for _, item := range b.selectedItems {
		key := Key{Token: item.Key(), Orderbook: marketplace.Orderbook}
		if _, found := b.indexOfLocked(key); found {
			continue
		}
		b.listings = append(b.listings, b.newRowLocked(item, marketplace))
		RowsGeneratedTotal.Inc()
	}
}

// regenerateLocked rebuilds the full working set as selected items times
// selected marketplaces. Destructive by design.
func (b *Builder) regenerateLocked() {
	b.listings = b.listings[:0]
	for _, item := range b.selectedItems {
		for _, marketplace := range b.selectedMarketplaces {
			b.listings = append(b.listings, b.newRowLocked(item, marketplace))
			RowsGeneratedTotal.Inc()
		}
	}

	b.logger.Debug("working-set-regenerated",
		zap.Int("items", len(b.selectedItems)),
		zap.Int("marketplaces", len(b.selectedMarketplaces)),
		zap.Int("rows", len(b.listings)))
}

func (b *Builder) newRowLocked(item types.Token, marketplace types.Marketplace) CandidateListing {
	price := b.globalPrice
	if price == "" {
		price = "0"
	}

	return CandidateListing{
		Token:            item,
		Price:            price,
		Quantity:         1,
		ExpirationOption: b.globalExpiration,
		Orderbook:        marketplace.Orderbook,
		OrderKind:        marketplace.OrderKind,
	}
}

func (b *Builder) indexOfLocked(key Key) (int, bool) {
	for i := range b.listings {
		if b.listings[i].Key() == key {
			return i, true
		}
	}
	return 0, false
}

// UpdateListing replaces the row whose identity key matches, leaving all
// other rows untouched and preserving order. Quantity is clamped to the
// owned count and floored at 1; single-edition tokens are pinned to 1.
func (b *Builder) UpdateListing(updated CandidateListing) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	i, found := b.indexOfLocked(updated.Key())
	if !found {
		return false
	}

	if !updated.Token.MultiEdition() {
		updated.Quantity = 1
	} else if updated.Quantity > updated.Token.OwnedCount {
		updated.Quantity = updated.Token.OwnedCount
	} else if updated.Quantity < 1 {
		updated.Quantity = 1
	}

	b.listings[i] = recomputeFee(updated)
	RowUpdatesTotal.Inc()
	return true
}

// RemoveListing removes a single row. When the owning item has no other rows
// left, it is also removed from the selected-items set; the return value
// reports whether that happened.
func (b *Builder) RemoveListing(tokenKey, orderbook string) (itemRemoved bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.removeListingLocked(tokenKey, orderbook)
}

func (b *Builder) removeListingLocked(tokenKey, orderbook string) (itemRemoved bool) {
	i, found := b.indexOfLocked(Key{Token: tokenKey, Orderbook: orderbook})
	if !found {
		return false
	}
	b.listings = append(b.listings[:i], b.listings[i+1:]...)

	for _, l := range b.listings {
		if l.Token.Key() == tokenKey {
			return false
		}
	}

	for j, item := range b.selectedItems {
		if item.Key() == tokenKey {
			b.selectedItems = append(b.selectedItems[:j], b.selectedItems[j+1:]...)
			return true
		}
	}
	return false
}

// SetGlobalPrice sets the standing global price and broadcasts it to every
// existing row, overwriting row-level values.
func (b *Builder) SetGlobalPrice(price string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.globalPrice = price
	for i := range b.listings {
		b.listings[i].Price = price
		b.listings[i] = recomputeFee(b.listings[i])
	}
}

// SetGlobalExpiration sets the standing expiration policy and broadcasts it
// to every existing row.
func (b *Builder) SetGlobalExpiration(opt types.ExpirationOption) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.globalExpiration = opt
	for i := range b.listings {
		b.listings[i].ExpirationOption = opt
	}
}

// SetCurrency selects the settlement currency for the whole set.
func (b *Builder) SetCurrency(c types.Currency) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.currency = c
}

// Currency returns the selected settlement currency.
func (b *Builder) Currency() types.Currency {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.currency
}

// ApplyFloorPrice writes each token's collection floor price into its rows
// and resets the currency to the default. One-shot: it does not become the
// standing global price.
func (b *Builder) ApplyFloorPrice() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.listings {
		floor := b.listings[i].Token.Collection.FloorAskPrice
		if floor > 0 {
			b.listings[i].Price = formatPrice(floor)
			b.listings[i] = recomputeFee(b.listings[i])
		}
	}
	b.resetCurrencyLocked()
}

// ApplyTopTraitPrice writes each token's highest trait floor into its rows
// and resets the currency to the default. One-shot, like ApplyFloorPrice.
func (b *Builder) ApplyTopTraitPrice() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.listings {
		top := b.listings[i].Token.TopTraitPrice()
		if top > 0 {
			b.listings[i].Price = formatPrice(top)
			b.listings[i] = recomputeFee(b.listings[i])
		}
	}
	b.resetCurrencyLocked()
}

// SetRowPrice sets a single row's price, e.g. from its floor or top-trait
// shortcut.
func (b *Builder) SetRowPrice(key Key, price string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	i, found := b.indexOfLocked(key)
	if !found {
		return false
	}
	b.listings[i].Price = price
	b.listings[i] = recomputeFee(b.listings[i])
	RowUpdatesTotal.Inc()
	return true
}

func (b *Builder) resetCurrencyLocked() {
	if len(b.currencies) > 0 {
		b.currency = b.currencies[0]
	}
}

// SubmitReady reports whether every row carries a valid price at or above
// the minimum tradeable amount. Any failing row disables submission for the
// whole set.
func (b *Builder) SubmitReady() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.listings) == 0 {
		return false
	}

	for _, l := range b.listings {
		if l.Price == "" {
			return false
		}
		price, err := strconv.ParseFloat(l.Price, 64)
		if err != nil || price < MinimumListingPrice {
			return false
		}
	}
	return true
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parsePrice(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// recomputeFee refreshes the row's computed fee amount from its resolved
// rate, price, and quantity.
func recomputeFee(l CandidateListing) CandidateListing {
	l.MarketplaceFee = float64(l.FeeBps) / 10000 * parsePrice(l.Price) * float64(l.Quantity)
	return l
}
