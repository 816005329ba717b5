package player

import (
	"crypto/rand"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cuelink/cuelink/chapter"
	"github.com/cuelink/cuelink/constant"
	"github.com/cuelink/cuelink/log"
	"github.com/cuelink/cuelink/where"
	"github.com/samber/lo"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
)

// MPV implements the Player interface using mpv's JSON-IPC protocol.
type MPV struct {
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{} // closed when mpv process exits
	mu         sync.Mutex    // Protects socket writes
}

// NewMPV creates a new MPV player instance (does not start playback).
func NewMPV() *MPV {
	return &MPV{
		exited: make(chan struct{}),
	}
}

// Load starts mpv paused on the given media. Playback starts once the
// deep-link controller asks for it, so a pending seek lands before any audio plays.
func (m *MPV) Load(rawURL string, title string) error {
	safeURL, err := sanitizeMediaTarget(rawURL)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	if m.socketPath == "" {
		randomBytes := make([]byte, 4)
		if _, err := rand.Read(randomBytes); err != nil {
			return fmt.Errorf("generate socket name: %w", err)
		}
		m.socketPath = filepath.Join(where.Temp(), fmt.Sprintf("%s-%x.sock", constant.Cuelink, randomBytes))
	}

	safeTitle := sanitizeTitle(title)
	args := []string{
		"--no-terminal",
		"--really-quiet",
		fmt.Sprintf("--input-ipc-server=%s", m.socketPath),
		fmt.Sprintf("--force-media-title=%s", safeTitle),
		fmt.Sprintf("--title=%s", safeTitle),
		"--force-window=yes",
		"--keep-open=yes", // keep eof-reached observable instead of exiting
		"--pause",
		safeURL,
	}

	m.cmd = exec.Command("mpv", args...)
	m.cmd.SysProcAttr = sysProcAttr()

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	// Reap the process to prevent zombies
	m.exited = make(chan struct{})
	go func() {
		_ = m.cmd.Wait()
		close(m.exited)
	}()

	if err := m.waitForSocket(); err != nil {
		select {
		case <-m.exited:
		default:
			log.Warnf("killing mpv: socket never became ready")
			_ = killProcess(m.cmd)
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	log.Infof("mpv ready on %s", m.socketPath)
	return nil
}

// Wait returns a channel that is closed when the mpv process exits.
func (m *MPV) Wait() <-chan struct{} {
	return m.exited
}

// waitForSocket polls until the mpv IPC socket is accepting connections.
func (m *MPV) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		select {
		case <-m.exited:
			return fmt.Errorf("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

// Snapshot samples position, buffer, pause and end-of-file state.
// Properties mpv cannot answer yet (nothing loaded) read as zero values.
func (m *MPV) Snapshot() (Snapshot, error) {
	var (
		s   Snapshot
		err error
	)

	if s.CurrentTime, err = m.floatProperty("time-pos"); err != nil {
		return Snapshot{}, err
	}
	if s.Duration, err = m.floatProperty("duration"); err != nil {
		return Snapshot{}, err
	}
	if s.Paused, err = m.boolProperty("pause"); err != nil {
		return Snapshot{}, err
	}
	if s.Ended, err = m.boolProperty("eof-reached"); err != nil {
		return Snapshot{}, err
	}

	// demuxer-cache-time is the timestamp the demuxer has read up to
	if s.BufferedEnd, err = m.floatProperty("demuxer-cache-time"); err != nil {
		return Snapshot{}, err
	}
	// local files are seekable throughout; mpv reports no cache for them
	if s.BufferedEnd == 0 && !strings.Contains(m.mediaURL(), "://") {
		s.BufferedEnd = s.Duration
	}

	return s, nil
}

// Seek moves playback to the given absolute position in seconds.
func (m *MPV) Seek(seconds float64) error {
	_, err := m.sendCommand("seek", seconds, "absolute")
	return err
}

// Play clears the pause flag.
func (m *MPV) Play() error {
	return m.set("pause", false)
}

// Pause sets the pause flag.
func (m *MPV) Pause() error {
	return m.set("pause", true)
}

// SetChapters replaces mpv's chapter-list so its OSC shows the same marks.
func (m *MPV) SetChapters(marks []*chapter.Mark) error {
	chapters := lo.Map(marks, func(mark *chapter.Mark, _ int) map[string]any {
		return map[string]any{
			"title": mark.Title,
			"time":  mark.Start,
		}
	})
	return m.set("chapter-list", chapters)
}

// Close shuts down the mpv process and cleans up resources.
func (m *MPV) Close() error {
	if m.socketPath == "" {
		return nil
	}

	_, _ = m.sendCommand("quit")

	select {
	case <-m.exited:
	case <-time.After(3 * time.Second):
		_ = killProcess(m.cmd)
	}

	_ = os.Remove(m.socketPath)
	return nil
}

// Socket returns the IPC socket path.
func (m *MPV) Socket() string {
	return m.socketPath
}

func (m *MPV) mediaURL() string {
	if m.cmd == nil || len(m.cmd.Args) == 0 {
		return ""
	}
	return m.cmd.Args[len(m.cmd.Args)-1]
}

func (m *MPV) set(property string, value any) error {
	_, err := m.sendCommand("set_property", property, value)
	return err
}

func (m *MPV) floatProperty(name string) (float64, error) {
	data, err := m.property(name)
	if err != nil || data == nil {
		return 0, err
	}

	val, ok := data.(float64)
	if !ok {
		return 0, fmt.Errorf("property %s: expected float64, got %T", name, data)
	}
	return val, nil
}

func (m *MPV) boolProperty(name string) (bool, error) {
	data, err := m.property(name)
	if err != nil || data == nil {
		return false, err
	}

	val, ok := data.(bool)
	if !ok {
		return false, fmt.Errorf("property %s: expected bool, got %T", name, data)
	}
	return val, nil
}

// property reads an mpv property, mapping "property unavailable" to nil.
func (m *MPV) property(name string) (any, error) {
	data, err := m.sendCommand("get_property", name)
	if err != nil {
		if strings.Contains(err.Error(), errPropertyUnavailable) {
			return nil, nil
		}
		return nil, fmt.Errorf("property %s: %w", name, err)
	}
	return data, nil
}

// sanitizeMediaTarget validates that a URL is safe to pass to mpv.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", fmt.Errorf("empty URL")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in URL")
	}

	// Prevent flag injection: URLs must not start with -
	if strings.HasPrefix(l, "-") {
		return "", fmt.Errorf("url must not start with '-' (looks like a flag)")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			// mpv does not understand media fragments
			u.Fragment = ""
			return u.String(), nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	return filepath.Clean(l), nil
}

// sanitizeTitle flattens the title to a single line.
func sanitizeTitle(title string) string {
	t := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	return strings.TrimSpace(t)
}
