package modelapi

import (
	"io"
	"io/ioutil"
	"net/http"

	"github.com/cenkalti/backoff"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// WaitForReady polls the model service health endpoint until it answers 200,
// giving up when b stops or ctx is done. Scenario steps never retry, this is
// only used before a run starts.
func (c *RestClient) WaitForReady(ctx context.Context, b backoff.BackOff) error {
	uri := c.apiHost + HealthPath
	try := 1
	err := backoff.Retry(func() error {
		log.Debugf("Health probe try #%d: %s", try, uri)
		try++
		if ctx.Err() != nil {
			return nil
		}
		return c.probe(ctx, uri)
	}, b)
	if ctx.Err() != nil {
		return errors.Wrapf(ctx.Err(), "waiting for %s", uri)
	}
	return err
}

func (c *RestClient) probe(ctx context.Context, uri string) error {
	req, err := http.NewRequest("GET", uri, nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req.WithContext(ctx))
	if err != nil {
		return errors.Wrapf(err, "GET %s", uri)
	}
	defer resp.Body.Close()
	io.Copy(ioutil.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("GET %s: status %d", uri, resp.StatusCode)
	}
	return nil
}
