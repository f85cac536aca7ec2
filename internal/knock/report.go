package knock

import (
	"html"
	"strings"

	"github.com/goliatone/go-knock/pkg/message"
)

// Report adds one message per result: an info on success, an error quoting
// the fwknop output otherwise. verbose adds the command line and output of
// every run. Messages carry <br /> markup and escape everything else.
func Report(results []Result, msgs *message.Messages, verbose bool) {
	for _, r := range results {
		output := strings.TrimSuffix(r.Output, "\n")
		if r.OK() {
			msgs.AddInfo(`Knock send successfully to "` + html.EscapeString(r.Host) +
				`". With correct settings, you should be able to access the server for a limited time now.`)
		} else {
			msgs.AddError(`Unable to execute fwknop. It says: "` + nl2br(html.EscapeString(output)) + `".`)
		}
		if verbose {
			msgs.AddInfo("Command:<br />" + html.EscapeString(r.Command) +
				"<br /><br />Output:<br />" + nl2br(html.EscapeString(output)))
		}
	}
}

func nl2br(s string) string {
	return strings.ReplaceAll(s, "\n", "<br />\n")
}
