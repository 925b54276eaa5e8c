// Package output renders CLI results for humans and machines.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/arcziwoda/skylock-sub000/internal/cli/api"
)

// JSON prints v as indented JSON to stdout.
func JSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// ContentsTable prints a folder listing as a human-readable table.
func ContentsTable(contents api.Contents) {
	if len(contents.Folders) == 0 && len(contents.Files) == 0 {
		fmt.Println("Empty folder.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSIZE\tPUBLIC\tMODIFIED")

	for _, f := range contents.Folders {
		fmt.Fprintf(w, "%s/\t-\t%s\t%s\n", f.Name, yesNo(f.IsPublic), RelativeTime(f.UpdatedAt))
	}
	for _, f := range contents.Files {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", f.Name, FormatSize(f.Size), yesNo(f.IsPublic), RelativeTime(f.UpdatedAt))
	}
	w.Flush()
}

// FileDetail prints a single file's details.
func FileDetail(f api.File) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Name:\t%s\n", f.Name)
	fmt.Fprintf(w, "ID:\t%s\n", f.ID)
	fmt.Fprintf(w, "Type:\t%s\n", f.MimeType)
	fmt.Fprintf(w, "Size:\t%s\n", FormatSize(f.Size))
	fmt.Fprintf(w, "Public:\t%s\n", yesNo(f.IsPublic))
	fmt.Fprintf(w, "Created:\t%s\n", f.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "Modified:\t%s\n", f.UpdatedAt.Format(time.RFC3339))
	w.Flush()
}

// UserInfo prints user details.
func UserInfo(u api.User) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Username:\t%s\n", u.Username)
	fmt.Fprintf(w, "ID:\t%s\n", u.ID)
	w.Flush()
}

// FormatSize converts bytes to a human-readable string.
func FormatSize(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}

// RelativeTime formats a timestamp relative to now (e.g. "2h ago").
func RelativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("2006-01-02")
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "-"
}
