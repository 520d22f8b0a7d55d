package dev

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dialReload(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(url, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatal(err)
	}
	return conn
}

func waitForClients(t *testing.T, rs *ReloadServer, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for rs.ClientCount() < n {
		if time.Now().After(deadline) {
			t.Fatalf("ClientCount = %d, want %d", rs.ClientCount(), n)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestNotifyReload(t *testing.T) {
	rs := NewReloadServer()
	defer rs.Close()

	srv := httptest.NewServer(rs)
	defer srv.Close()

	conn := dialReload(t, srv.URL)
	defer conn.Close()
	waitForClients(t, rs, 1)

	rs.NotifyReload()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	var msg ReloadMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		t.Fatal(err)
	}
	if msg.Type != ReloadTypeFull {
		t.Errorf("Type = %q, want %q", msg.Type, ReloadTypeFull)
	}
}

func TestNotifyCSS(t *testing.T) {
	rs := NewReloadServer()
	defer rs.Close()

	srv := httptest.NewServer(rs)
	defer srv.Close()

	conn := dialReload(t, srv.URL)
	defer conn.Close()
	waitForClients(t, rs, 1)

	rs.NotifyCSS("page.css")

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	var msg ReloadMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		t.Fatal(err)
	}
	if msg.Type != ReloadTypeCSS || msg.File != "page.css" {
		t.Errorf("msg = %+v", msg)
	}
}

func TestNotifyError(t *testing.T) {
	rs := NewReloadServer()
	defer rs.Close()

	srv := httptest.NewServer(rs)
	defer srv.Close()

	conn := dialReload(t, srv.URL)
	defer conn.Close()
	waitForClients(t, rs, 1)

	rs.NotifyError("render failed: boom")

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	var msg ReloadMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		t.Fatal(err)
	}
	if msg.Type != ReloadTypeError || msg.Error != "render failed: boom" {
		t.Errorf("msg = %+v", msg)
	}
}

func TestClientDisconnect(t *testing.T) {
	rs := NewReloadServer()
	defer rs.Close()

	srv := httptest.NewServer(rs)
	defer srv.Close()

	conn := dialReload(t, srv.URL)
	waitForClients(t, rs, 1)

	conn.Close()
	deadline := time.Now().Add(2 * time.Second)
	for rs.ClientCount() > 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never removed after disconnect")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
