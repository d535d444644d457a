package gateway

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/technova/airdash-server/internal/protocol"
	"github.com/technova/airdash-server/internal/queue"
	"github.com/technova/airdash-server/internal/sched"
	"github.com/technova/airdash-server/internal/session"
	"github.com/technova/airdash-server/pkg/config"
)

// TCPServer accepts sensor-node connections speaking the line protocol
// and forwards their readings to the readings topic.
type TCPServer struct {
	config    *config.GatewayConfig
	sessions  *session.Manager
	scheduler *sched.Scheduler
	producer  *queue.Producer
	listener  net.Listener
	wg        sync.WaitGroup
	stopCh    chan struct{}
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewTCPServer creates a new gateway TCP server
func NewTCPServer(cfg *config.GatewayConfig, sessions *session.Manager, scheduler *sched.Scheduler, producer *queue.Producer) *TCPServer {
	ctx, cancel := context.WithCancel(context.Background())
	return &TCPServer{
		config:    cfg,
		sessions:  sessions,
		scheduler: scheduler,
		producer:  producer,
		stopCh:    make(chan struct{}),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start starts the TCP server
func (s *TCPServer) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to start gateway: %w", err)
	}

	s.listener = listener
	fmt.Printf("Gateway listening on %s\n", addr)

	s.wg.Add(1)
	go s.acceptConnections()

	return nil
}

// Stop stops the TCP server gracefully
func (s *TCPServer) Stop() {
	close(s.stopCh)
	s.cancel()

	if s.listener != nil {
		s.listener.Close()
	}

	s.wg.Wait()
	fmt.Println("Gateway stopped")
}

func (s *TCPServer) acceptConnections() {
	defer s.wg.Done()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.stopCh:
				return
			default:
				fmt.Printf("Failed to accept connection: %v\n", err)
				continue
			}
		}

		if s.sessions.Count() >= s.config.MaxConnections {
			fmt.Println("Maximum connections reached, rejecting connection")
			conn.Close()
			continue
		}

		s.wg.Add(1)
		go s.handleConnection(conn)
	}
}

func (s *TCPServer) handleConnection(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	connectionID := uuid.New().String()
	fmt.Printf("New connection: %s from %s\n", connectionID, conn.RemoteAddr())

	// The device must identify itself before anything else.
	conn.SetReadDeadline(time.Now().Add(s.config.IdentifyTimeout))

	reader := bufio.NewReader(conn)
	line, err := reader.ReadString('\n')
	if err != nil {
		fmt.Printf("Failed to read identify message: %v\n", err)
		return
	}

	msg, err := protocol.ParseMessage([]byte(line))
	if err != nil {
		fmt.Printf("Failed to parse identify message: %v\n", err)
		s.sendError(conn)
		return
	}

	identifyMsg, ok := msg.(*protocol.IdentifyMessage)
	if !ok {
		fmt.Printf("Expected identify message, got %T\n", msg)
		s.sendError(conn)
		return
	}

	if err := s.sessions.Register(connectionID, identifyMsg.DeviceID, identifyMsg.Location, conn); err != nil {
		fmt.Printf("Failed to register sensor: %v\n", err)
		s.sendError(conn)
		return
	}
	defer s.sessions.Unregister(connectionID)
	defer s.scheduler.Cancel(inactivityTimerID(connectionID))

	fmt.Printf("Sensor identified: %s (device=%s, location=%s)\n", connectionID, identifyMsg.DeviceID, identifyMsg.Location)

	ack := protocol.NewAckMessage(protocol.AckStatusIdentified)
	if err := s.sendMessage(conn, ack); err != nil {
		fmt.Printf("Failed to send ack: %v\n", err)
		return
	}

	s.scheduleInactivityTimer(connectionID)

	// Clear the identify deadline for normal operation
	conn.SetReadDeadline(time.Time{})

	for {
		select {
		case <-s.stopCh:
			return
		default:
		}

		conn.SetReadDeadline(time.Now().Add(30 * time.Second))
		line, err := reader.ReadString('\n')
		if err != nil {
			if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
				continue
			}
			fmt.Printf("Connection %s closed: %v\n", connectionID, err)
			return
		}

		msg, err := protocol.ParseMessage([]byte(line))
		if err != nil {
			fmt.Printf("Failed to parse message: %v\n", err)
			continue
		}

		if err := s.handleMessage(connectionID, identifyMsg, msg, conn); err != nil {
			fmt.Printf("Failed to handle message: %v\n", err)
		}

		s.sessions.UpdateActivity(connectionID)
		s.scheduleInactivityTimer(connectionID)
	}
}

func (s *TCPServer) handleMessage(connectionID string, identity *protocol.IdentifyMessage, msg interface{}, conn net.Conn) error {
	switch m := msg.(type) {
	case *protocol.ReadingsMessage:
		return s.handleReadings(connectionID, identity, m)

	case *protocol.KeepaliveMessage:
		return s.handleKeepalive(conn)

	default:
		return fmt.Errorf("unknown message type: %T", msg)
	}
}

func (s *TCPServer) handleReadings(connectionID string, identity *protocol.IdentifyMessage, msg *protocol.ReadingsMessage) error {
	readingMsg := &protocol.ReadingMessage{
		ConnectionID: connectionID,
		DeviceID:     identity.DeviceID,
		Location:     identity.Location,
		ReceivedAt:   time.Now(),
		Fields:       msg.Data,
	}

	data, err := protocol.EncodeReadingMessage(readingMsg)
	if err != nil {
		return fmt.Errorf("failed to encode reading: %w", err)
	}

	// Key by device id so a device's readings stay ordered
	if err := s.producer.Publish(s.ctx, identity.DeviceID, data); err != nil {
		return fmt.Errorf("failed to publish reading: %w", err)
	}

	fmt.Printf("Received readings from %s (device=%s)\n", connectionID, identity.DeviceID)
	return nil
}

func (s *TCPServer) handleKeepalive(conn net.Conn) error {
	ack := protocol.NewAckMessage(protocol.AckStatusAlive)
	return s.sendMessage(conn, ack)
}

func (s *TCPServer) sendMessage(conn net.Conn, msg interface{}) error {
	data, err := protocol.EncodeMessage(msg)
	if err != nil {
		return err
	}

	_, err = conn.Write(append(data, '\n'))
	return err
}

func (s *TCPServer) sendError(conn net.Conn) {
	ack := protocol.NewAckMessage(protocol.AckStatusError)
	s.sendMessage(conn, ack)
}

func inactivityTimerID(connectionID string) string {
	return fmt.Sprintf("inactivity-%s", connectionID)
}

func (s *TCPServer) scheduleInactivityTimer(connectionID string) {
	expiryAt := time.Now().Add(s.config.InactivityTimeout)

	callback := func() {
		fmt.Printf("Inactivity timeout for connection %s\n", connectionID)

		sensor, exists := s.sessions.Get(connectionID)
		if !exists {
			return
		}

		// Unregister happens in the connection handler's deferred cleanup
		sensor.Conn.Close()
	}

	s.scheduler.Schedule(inactivityTimerID(connectionID), expiryAt, callback)
}
