package statsd

import (
	"net"
	"testing"
	"time"
)

func TestMetricName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		prefix string
		name   string
		want   string
	}{
		{"portal", "http.requests", "portal.http.requests"},
		{"portal", " .trimmed. ", "portal.trimmed"},
		{"", "http.requests", "http.requests"},
		{"portal", "", "portal"},
		{"", "", ""},
	}

	for _, tc := range tests {
		if got := metricName(tc.prefix, tc.name); got != tc.want {
			t.Fatalf("metricName(%q, %q) = %q, want %q", tc.prefix, tc.name, got, tc.want)
		}
	}
}

func TestFormatTags(t *testing.T) {
	t.Parallel()

	got := formatTags(map[string]string{
		"status": " 200 ",
		"method": "GET",
		"":       "dropped",
	})
	want := "|#method:GET,status:200"
	if got != want {
		t.Fatalf("formatTags = %q, want %q", got, want)
	}

	if got := formatTags(nil); got != "" {
		t.Fatalf("formatTags(nil) = %q, want empty string", got)
	}
}

func TestNilClientIsNoOp(t *testing.T) {
	t.Parallel()

	var c *Client
	c.Count("http.requests", 1, nil)
	c.Timing("http.request_duration", time.Second, nil)
	if err := c.Close(); err != nil {
		t.Fatalf("Close on nil client: %v", err)
	}
}

func TestClientEmitsLines(t *testing.T) {
	t.Parallel()

	sock, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen udp: %v", err)
	}
	defer sock.Close()

	client, err := NewClient(Config{Addr: sock.LocalAddr().String(), Prefix: "portal"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	defer client.Close()

	client.Count("http.requests", 1, map[string]string{"method": "GET", "status": "200"})

	if err := sock.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("set deadline: %v", err)
	}
	buf := make([]byte, 512)
	n, _, err := sock.ReadFrom(buf)
	if err != nil {
		t.Fatalf("read packet: %v", err)
	}

	got := string(buf[:n])
	want := "portal.http.requests:1|c|#method:GET,status:200"
	if got != want {
		t.Fatalf("line = %q, want %q", got, want)
	}
}

func TestClientDropsAfterClose(t *testing.T) {
	t.Parallel()

	client, err := NewClient(Config{Addr: "127.0.0.1:8125"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Must not panic or re-dial.
	client.Count("http.requests", 1, nil)
	if err := client.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}
