package document

import (
	"bytes"
	"fmt"
)

// ContactCardFilename is the stable object key; the card is overwritten on
// every boot so detail changes need no migration.
const ContactCardFilename = "contact-card.vcf"

// ContactCardContentType is the media type the card is served under.
const ContactCardContentType = "text/vcard"

// ContactCard renders the business vCard the acknowledgement email links to.
// Customers save it so crew calls on moving day do not land in voicemail as
// unknown numbers.
func ContactCard() []byte {
	var b bytes.Buffer

	// vCard 3.0, CRLF line endings per RFC 2426.
	writeLine := func(format string, args ...interface{}) {
		fmt.Fprintf(&b, format, args...)
		b.WriteString("\r\n")
	}

	writeLine("BEGIN:VCARD")
	writeLine("VERSION:3.0")
	writeLine("FN:%s", businessName)
	writeLine("ORG:%s", businessName)
	writeLine("TEL;TYPE=WORK,VOICE:%s", businessPhone)
	writeLine("EMAIL;TYPE=WORK:%s", businessEmail)
	writeLine("URL:https://%s", businessSite)
	writeLine("END:VCARD")

	return b.Bytes()
}
