package cbk

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/jasho/finance-service/internal/config"
	"github.com/sirupsen/logrus"
)

// CBKClient fetches indicative forex rates from the Central Bank of Kenya
type CBKClient struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

// NewCBKClient initializes a new CBK client
func NewCBKClient(cfg *config.Config, log *logrus.Logger) *CBKClient {
	return &CBKClient{
		url: cfg.CBKURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// fetchFeed retrieves the raw XML rates feed
func (c *CBKClient) fetchFeed() ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Accept", "application/xml")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v", err)
	}

	c.log.Debugf("CBK XML response: %s", string(body))

	return body, nil
}

// parseXMLResponse extracts the mean rate for the given currency from the
// indicative rates feed
func (c *CBKClient) parseXMLResponse(rawBody []byte, currency string) (float64, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rawBody); err != nil {
		return 0, fmt.Errorf("failed to parse XML: %v", err)
	}

	for _, rateElement := range doc.FindElements("//rates/rate") {
		currencyElement := rateElement.FindElement("./currency")
		if currencyElement == nil || currencyElement.Text() != currency {
			continue
		}
		meanElement := rateElement.FindElement("./mean")
		if meanElement == nil {
			return 0, fmt.Errorf("mean element not found for %s", currency)
		}
		rate, err := strconv.ParseFloat(meanElement.Text(), 64)
		if err != nil {
			return 0, fmt.Errorf("failed to parse rate: %v", err)
		}
		return rate, nil
	}

	return 0, fmt.Errorf("no rate data found for %s", currency)
}

// GetUSDRate retrieves the current indicative KES per USD mean rate
func (c *CBKClient) GetUSDRate() (float64, error) {
	body, err := c.fetchFeed()
	if err != nil {
		return 0, err
	}

	rate, err := c.parseXMLResponse(body, "US DOLLAR")
	if err != nil {
		return 0, err
	}

	c.log.Infof("Retrieved KES/USD indicative rate: %.4f", rate)
	return rate, nil
}
