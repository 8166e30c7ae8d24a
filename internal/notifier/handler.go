package notifier

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/notifytray/notifytray/internal/api"
	"github.com/notifytray/notifytray/internal/assets"
	"github.com/notifytray/notifytray/internal/logging"
	"github.com/notifytray/notifytray/internal/web"
)

// emptyBodyMessage replaces an empty request body.
const emptyBodyMessage = "New notification arrived."

// timeLayout formats the notification timestamp at medium precision.
const timeLayout = "15:04:05"

// maxLineSize caps a single body line; the scanner stops at anything
// longer and the message ends there.
const maxLineSize = 1 << 20

// Handler builds the full route table: the status page and event
// stream under reserved paths, everything else interpreted as an icon
// name. No shipped asset is called "ws" or "ui", so the reserved paths
// never shadow a notification channel.
func (n *Notifier) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", n.hub.ServeWS)
	mux.HandleFunc("/ui/icons", api.IconsHandler())
	mux.HandleFunc("/ui/logs", api.LogsHandler())
	mux.Handle("/ui/", http.StripPrefix("/ui/", web.Handler()))
	mux.HandleFunc("/", n.handleNotify)
	return mux
}

// handleNotify implements the notification contract: the path selects
// an icon, the body carries the message. 404 with an empty body when
// the icon is unknown; 200 with an empty body after the notification
// is shown. Any method is accepted.
func (n *Notifier) handleNotify(w http.ResponseWriter, r *http.Request) {
	icon, err := assets.Resolve(r.URL.Path)
	if err != nil {
		logging.Debugf(logging.CatHTTP, "no icon for path %q", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		return
	}

	message := readMessage(r.Body)
	stamp := n.now().Format(timeLayout)

	fmt.Fprintln(n.out, stamp+" "+message)
	n.surface.Publish(icon, "Notification "+stamp, message, n.trigger)
	n.hub.Publish(api.Event{
		Time:    stamp,
		Icon:    strings.TrimLeft(r.URL.Path, "/"),
		Message: message,
	})

	w.WriteHeader(http.StatusOK)
}

// readMessage reads the whole body as text, joining lines with "\n".
// Invalid UTF-8 passes through byte-for-byte. Read errors end the
// message at whatever arrived; an empty result becomes the
// placeholder.
func readMessage(r io.Reader) string {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	message := strings.Join(lines, "\n")
	if message == "" {
		return emptyBodyMessage
	}
	return message
}
