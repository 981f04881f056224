package main

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"lg/peso-certo-api/internal/flow"
)

func TestStreamFlow_SendsView(t *testing.T) {
	ts := setupTest(t, nil, "", "")
	srv := httptest.NewServer(ts.router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/flow"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var v flow.View
	if err := conn.ReadJSON(&v); err != nil {
		t.Fatalf("read: %v", err)
	}
	if v.Phase != flow.Welcome {
		t.Errorf("streamed phase = %s, want welcome", v.Phase)
	}

	conn.Close()
	ts.h.closeStreams()
}

func TestStreamFlow_RequiresToken(t *testing.T) {
	ts := setupAuthTest(t)
	srv := httptest.NewServer(ts.router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/flow"
	if _, _, err := websocket.DefaultDialer.Dial(url, nil); err == nil {
		t.Error("dial without token succeeded")
	}

	conn, _, err := websocket.DefaultDialer.Dial(url+"?token="+testToken, nil)
	if err != nil {
		t.Fatalf("dial with token: %v", err)
	}
	conn.Close()
	ts.h.closeStreams()
}
