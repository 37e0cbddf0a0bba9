package ledger

import (
	"math/big"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Collector records the fees forwarded by the markets and logs every
// notification. It never calls back into a market.
type Collector struct {
	mtx    sync.Mutex
	totals map[string]*big.Int
}

// NewCollector ...
func NewCollector() *Collector {
	return &Collector{totals: make(map[string]*big.Int)}
}

// OnFeeReceived implements domain.FeeCollector.
func (c *Collector) OnFeeReceived(asset string, amount *big.Int) error {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	total, ok := c.totals[asset]
	if !ok {
		total = new(big.Int)
		c.totals[asset] = total
	}
	total.Add(total, amount)

	log.Debugf("collector: received fee %s of asset %s", amount, asset)
	return nil
}

// TotalFor returns the cumulated fees received for an asset.
func (c *Collector) TotalFor(asset string) *big.Int {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	total, ok := c.totals[asset]
	if !ok {
		return new(big.Int)
	}
	return new(big.Int).Set(total)
}
