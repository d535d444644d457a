package session

import (
	"fmt"
	"net"
	"sync"
	"time"
)

// SensorInfo holds information about a connected sensor node
type SensorInfo struct {
	ConnectionID  string
	DeviceID      string
	Location      string
	ConnectedAt   time.Time
	LastHeardFrom time.Time
	Conn          net.Conn
	mu            sync.RWMutex
}

// UpdateLastHeardFrom updates the last activity timestamp
func (s *SensorInfo) UpdateLastHeardFrom() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LastHeardFrom = time.Now()
}

// GetLastHeardFrom returns the last activity timestamp
func (s *SensorInfo) GetLastHeardFrom() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.LastHeardFrom
}

// Manager tracks all connected sensor nodes
type Manager struct {
	sensors  map[string]*SensorInfo // key: connection_id
	byDevice map[string][]string    // key: device_id, value: []connection_id
	mu       sync.RWMutex
	maxConns int
}

// NewManager creates a new session manager
func NewManager(maxConnections int) *Manager {
	return &Manager{
		sensors:  make(map[string]*SensorInfo),
		byDevice: make(map[string][]string),
		maxConns: maxConnections,
	}
}

// Register adds a new sensor connection
func (m *Manager) Register(connectionID, deviceID, location string, conn net.Conn) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.sensors) >= m.maxConns {
		return ErrMaxConnectionsReached
	}

	if _, exists := m.sensors[connectionID]; exists {
		return fmt.Errorf("connection ID %s already registered", connectionID)
	}

	now := time.Now()
	info := &SensorInfo{
		ConnectionID:  connectionID,
		DeviceID:      deviceID,
		Location:      location,
		ConnectedAt:   now,
		LastHeardFrom: now,
		Conn:          conn,
	}

	m.sensors[connectionID] = info
	m.byDevice[deviceID] = append(m.byDevice[deviceID], connectionID)

	return nil
}

// Unregister removes a sensor connection
func (m *Manager) Unregister(connectionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sensor, exists := m.sensors[connectionID]
	if !exists {
		return fmt.Errorf("connection ID %s not found", connectionID)
	}

	deviceID := sensor.DeviceID
	if connIDs, ok := m.byDevice[deviceID]; ok {
		for i, id := range connIDs {
			if id == connectionID {
				m.byDevice[deviceID] = append(connIDs[:i], connIDs[i+1:]...)
				break
			}
		}
		if len(m.byDevice[deviceID]) == 0 {
			delete(m.byDevice, deviceID)
		}
	}

	delete(m.sensors, connectionID)

	return nil
}

// Get retrieves sensor information by connection ID
func (m *Manager) Get(connectionID string) (*SensorInfo, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sensor, exists := m.sensors[connectionID]
	return sensor, exists
}

// GetByDevice retrieves all connection IDs for a device
func (m *Manager) GetByDevice(deviceID string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	connIDs := m.byDevice[deviceID]
	result := make([]string, len(connIDs))
	copy(result, connIDs)
	return result
}

// UpdateActivity updates the last heard from timestamp for a connection
func (m *Manager) UpdateActivity(connectionID string) error {
	m.mu.RLock()
	sensor, exists := m.sensors[connectionID]
	m.mu.RUnlock()

	if !exists {
		return fmt.Errorf("connection ID %s not found", connectionID)
	}

	sensor.UpdateLastHeardFrom()
	return nil
}

// GetInactiveConnections returns connection IDs that haven't been heard
// from in the given duration
func (m *Manager) GetInactiveConnections(timeout time.Duration) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	now := time.Now()
	var inactive []string

	for connID, sensor := range m.sensors {
		lastHeard := sensor.GetLastHeardFrom()
		if now.Sub(lastHeard) > timeout {
			inactive = append(inactive, connID)
		}
	}

	return inactive
}

// Count returns the total number of active connections
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sensors)
}

// Stats returns statistics about the session manager
func (m *Manager) Stats() ManagerStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return ManagerStats{
		TotalConnections: len(m.sensors),
		UniqueDevices:    len(m.byDevice),
		MaxConnections:   m.maxConns,
	}
}

// ManagerStats contains statistics about the session manager
type ManagerStats struct {
	TotalConnections int
	UniqueDevices    int
	MaxConnections   int
}

var (
	ErrMaxConnectionsReached = &SessionError{"maximum connections reached"}
)

// SessionError represents a session error
type SessionError struct {
	msg string
}

func (e *SessionError) Error() string {
	return e.msg
}
