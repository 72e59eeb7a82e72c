package client

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ValentinKolb/tomkv/rpc"
	"github.com/ValentinKolb/tomkv/rpc/common"
	"github.com/ValentinKolb/tomkv/rpc/serializer"
)

// Client drives a remote rpc/server over HTTP.
type Client struct {
	cfg    common.ClientConfig
	codec  serializer.Serializer
	logger *common.Logger
	http   *http.Client
}

// New constructs a Client talking to cfg.Endpoint, encoding and decoding
// Commands/Results with codec.
func New(cfg common.ClientConfig, codec serializer.Serializer) *Client {
	timeout := time.Duration(cfg.TimeoutSecond) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		cfg:    cfg,
		codec:  codec,
		logger: common.NewLogger("rpc/client"),
		http:   &http.Client{Timeout: timeout},
	}
}

func (c *Client) send(cmd rpc.Command) (rpc.Result, error) {
	body, err := c.codec.Serialize(cmd)
	if err != nil {
		return rpc.Result{}, fmt.Errorf("encoding command: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.cfg.Endpoint+"/command", bytes.NewReader(body))
	if err != nil {
		return rpc.Result{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return rpc.Result{}, fmt.Errorf("sending command: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return rpc.Result{}, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return rpc.Result{}, fmt.Errorf("server returned %d: %s", resp.StatusCode, respBody)
	}

	var result rpc.Result
	if err := c.codec.Deserialize(respBody, &result); err != nil {
		return rpc.Result{}, fmt.Errorf("decoding result: %w", err)
	}
	if result.Error != "" {
		return result, fmt.Errorf("%s", result.Error)
	}
	return result, nil
}

// CreateTom creates the empty document tomID on the server, if absent.
func (c *Client) CreateTom(tomID string) (bool, error) {
	res, err := c.send(rpc.Command{Verb: rpc.VerbCreateTom, TomID: tomID})
	return res.Bool, err
}

// DeleteTom deletes the document tomID from the server, if present.
func (c *Client) DeleteTom(tomID string) (bool, error) {
	res, err := c.send(rpc.Command{Verb: rpc.VerbDeleteTom, TomID: tomID})
	return res.Bool, err
}

// Mount registers mountID against (tomID, internalPath) at priority.
func (c *Client) Mount(mountID, tomID, internalPath string, priority int) error {
	_, err := c.send(rpc.Command{Verb: rpc.VerbMount, MountID: mountID, TomID: tomID, InternalPath: internalPath, Priority: priority})
	return err
}

// Unmount removes every binding registered under mountID.
func (c *Client) Unmount(mountID string) (bool, error) {
	res, err := c.send(rpc.Command{Verb: rpc.VerbUnmount, MountID: mountID})
	return res.Bool, err
}

// Mounts lists every binding registered under mountID.
func (c *Client) Mounts(mountID string) ([]rpc.MountInfo, error) {
	res, err := c.send(rpc.Command{Verb: rpc.VerbMounts, MountID: mountID})
	return res.Mounts, err
}

// Key returns every surviving key at path.
func (c *Client) Key(path string) ([]string, error) {
	res, err := c.send(rpc.Command{Verb: rpc.VerbKey, Path: path})
	return res.Keys, err
}

// Mapped returns every surviving mapped value at path.
func (c *Client) Mapped(path string) ([]string, error) {
	res, err := c.send(rpc.Command{Verb: rpc.VerbMapped, Path: path})
	return res.Mappeds, err
}

// Value returns every surviving (key, mapped) pair at path.
func (c *Client) Value(path string) ([]rpc.KV, error) {
	res, err := c.send(rpc.Command{Verb: rpc.VerbValue, Path: path})
	return res.Values, err
}

// SetKey overwrites the key at path; asNew bypasses the outdated check.
func (c *Client) SetKey(path, key string, asNew bool) (int, error) {
	res, err := c.send(rpc.Command{Verb: rpc.VerbSetKey, Path: path, Key: key, AsNew: asNew})
	return res.Count, err
}

// SetMapped overwrites the mapped value at path; asNew bypasses the
// outdated check.
func (c *Client) SetMapped(path, mapped string, asNew bool) (int, error) {
	res, err := c.send(rpc.Command{Verb: rpc.VerbSetMapped, Path: path, Mapped: mapped, AsNew: asNew})
	return res.Count, err
}

// SetValue overwrites both key and mapped at path; asNew bypasses the
// outdated check.
func (c *Client) SetValue(path, key, mapped string, asNew bool) (int, error) {
	res, err := c.send(rpc.Command{Verb: rpc.VerbSetValue, Path: path, Key: key, Mapped: mapped, AsNew: asNew})
	return res.Count, err
}

// Insert writes (key, mapped) at path if absent or outdated. A positive
// lifetime stamps the node with an expiration.
func (c *Client) Insert(path, key, mapped string, lifetime time.Duration) (bool, error) {
	res, err := c.send(rpc.Command{Verb: rpc.VerbInsert, Path: path, Key: key, Mapped: mapped, LifetimeSec: int64(lifetime.Seconds())})
	return res.Bool, err
}

// Remove deletes the node at path wherever it is present and not outdated.
func (c *Client) Remove(path string) (bool, error) {
	res, err := c.send(rpc.Command{Verb: rpc.VerbRemove, Path: path})
	return res.Bool, err
}
