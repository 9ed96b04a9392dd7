package settings

import (
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"time"
)

// rpcRequest/rpcResponse mirror a minimal JSON-RPC 2.0 shape, matching the
// teacher's BrokerClient request/response correlation pattern: a
// connection-scoped incrementing request ID, one buffered response channel
// per in-flight request keyed by that ID, and a background reader goroutine
// that demultiplexes responses off the wire.
type rpcRequest struct {
	ID     string `json:"id"`
	Method string `json:"method"`
}

type rpcResponse struct {
	ID     string          `json:"id"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

type snapshotResult struct {
	Version Version           `json:"version"`
	Values  map[string]string `json:"values"`
}

// RemoteStore fetches the settings snapshot from an agency-operated config
// endpoint over a persistent TCP connection, using a JSON-RPC request for
// the single method "settings.snapshot". It is a minimal, read-only
// sibling of the teacher's BrokerClient — no publish/subscribe, no pipes,
// just the request/response correlation needed to refresh a snapshot.
type RemoteStore struct {
	address string
	timeout time.Duration

	mu      sync.Mutex
	conn    net.Conn
	encoder *json.Encoder
	decoder *json.Decoder
	reqID   int64

	respMu sync.Mutex
	resp   map[string]chan *rpcResponse

	cacheMu sync.RWMutex
	cached  *snapshotResult
}

// NewRemoteStore creates a RemoteStore targeting address. It connects
// lazily on the first call to refresh.
func NewRemoteStore(address string) *RemoteStore {
	return &RemoteStore{
		address: address,
		timeout: 10 * time.Second,
		resp:    make(map[string]chan *rpcResponse),
	}
}

func (rs *RemoteStore) connect() error {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.conn != nil {
		return nil
	}

	conn, err := net.DialTimeout("tcp", rs.address, rs.timeout)
	if err != nil {
		return fmt.Errorf("settings: failed to connect to %s: %w", rs.address, err)
	}

	rs.conn = conn
	rs.encoder = json.NewEncoder(conn)
	rs.decoder = json.NewDecoder(conn)
	go rs.readLoop()
	return nil
}

func (rs *RemoteStore) readLoop() {
	for {
		var resp rpcResponse
		if err := rs.decoder.Decode(&resp); err != nil {
			rs.mu.Lock()
			rs.conn = nil
			rs.mu.Unlock()
			rs.drainPending()
			return
		}

		rs.respMu.Lock()
		ch, ok := rs.resp[resp.ID]
		if ok {
			delete(rs.resp, resp.ID)
		}
		rs.respMu.Unlock()

		if ok {
			ch <- &resp
		}
	}
}

func (rs *RemoteStore) drainPending() {
	rs.respMu.Lock()
	defer rs.respMu.Unlock()
	for id, ch := range rs.resp {
		close(ch)
		delete(rs.resp, id)
	}
}

func (rs *RemoteStore) call(method string) (json.RawMessage, error) {
	if err := rs.connect(); err != nil {
		return nil, err
	}

	rs.mu.Lock()
	rs.reqID++
	reqID := fmt.Sprintf("req_%d", rs.reqID)
	encoder := rs.encoder
	rs.mu.Unlock()

	respChan := make(chan *rpcResponse, 1)
	rs.respMu.Lock()
	rs.resp[reqID] = respChan
	rs.respMu.Unlock()

	if err := encoder.Encode(rpcRequest{ID: reqID, Method: method}); err != nil {
		rs.respMu.Lock()
		delete(rs.resp, reqID)
		rs.respMu.Unlock()
		return nil, fmt.Errorf("settings: failed to send request: %w", err)
	}

	select {
	case resp := <-respChan:
		if resp == nil {
			return nil, fmt.Errorf("settings: connection closed while awaiting response")
		}
		if resp.Error != "" {
			return nil, fmt.Errorf("settings: remote error: %s", resp.Error)
		}
		return resp.Result, nil
	case <-time.After(rs.timeout):
		rs.respMu.Lock()
		delete(rs.resp, reqID)
		rs.respMu.Unlock()
		return nil, fmt.Errorf("settings: request timeout")
	}
}

func (rs *RemoteStore) refresh() (*snapshotResult, error) {
	raw, err := rs.call("settings.snapshot")
	if err != nil {
		return nil, err
	}

	var snap snapshotResult
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("settings: malformed snapshot result: %w", err)
	}

	rs.cacheMu.Lock()
	rs.cached = &snap
	rs.cacheMu.Unlock()
	return &snap, nil
}

func (rs *RemoteStore) current() (*snapshotResult, error) {
	snap, err := rs.refresh()
	if err == nil {
		return snap, nil
	}

	rs.cacheMu.RLock()
	defer rs.cacheMu.RUnlock()
	if rs.cached != nil {
		return rs.cached, nil
	}
	return nil, err
}

func (rs *RemoteStore) ProtocolVersion() Version {
	snap, err := rs.current()
	if err != nil {
		return V1
	}
	return snap.Version
}

func (rs *RemoteStore) Get(key string) (string, error) {
	snap, err := rs.current()
	if err != nil {
		return "", err
	}
	value, ok := snap.Values[key]
	if !ok || value == "" {
		return "", &ErrKeyNotFound{Key: key}
	}
	return value, nil
}

// Close releases the underlying TCP connection, if any.
func (rs *RemoteStore) Close() error {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if rs.conn == nil {
		return nil
	}
	err := rs.conn.Close()
	rs.conn = nil
	return err
}
