package mail

import "fmt"

// ThreadMessageID returns the constant message id used for all
// correspondence about one customer-name slug. Reusing the same id as both
// References and In-Reply-To makes repeated submissions from the same name
// collapse into a single conversation in the office inbox.
func ThreadMessageID(slug, domain string) string {
	return fmt.Sprintf("<quote-%s@%s>", slug, domain)
}

// ThreadingHeaders builds the header set carried by the notification email.
func ThreadingHeaders(threadID string) map[string]string {
	return map[string]string{
		"References":  threadID,
		"In-Reply-To": threadID,
	}
}
