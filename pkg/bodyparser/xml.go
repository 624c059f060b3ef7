package bodyparser

import (
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"

	"github.com/dmitrymomot/reqkit/pkg/logger"
)

// Process-wide XML parser settings.
var (
	xmlScope             sync.Mutex
	entityLoaderDisabled atomic.Bool
	internalErrors       atomic.Bool

	xmlErrMu sync.Mutex
	xmlErrs  []error
)

// DisableEntityLoader sets whether XML documents may declare entities and
// returns the previous setting.
func DisableEntityLoader(disable bool) bool {
	return entityLoaderDisabled.Swap(disable)
}

// EntityLoaderDisabled reports the current entity loader setting.
func EntityLoaderDisabled() bool {
	return entityLoaderDisabled.Load()
}

// UseInternalErrors switches XML error reporting between collection
// (retrievable with XMLErrors) and logging. It returns the previous setting.
// Turning collection off clears collected errors.
func UseInternalErrors(use bool) bool {
	prev := internalErrors.Swap(use)
	if !use {
		ClearXMLErrors()
	}
	return prev
}

// InternalErrors reports whether XML errors are being collected.
func InternalErrors() bool {
	return internalErrors.Load()
}

// XMLErrors returns a copy of the collected XML errors.
func XMLErrors() []error {
	xmlErrMu.Lock()
	defer xmlErrMu.Unlock()
	return append([]error(nil), xmlErrs...)
}

// ClearXMLErrors drops collected XML errors.
func ClearXMLErrors() {
	xmlErrMu.Lock()
	xmlErrs = nil
	xmlErrMu.Unlock()
}

func reportXMLError(log *slog.Logger, err error) {
	if internalErrors.Load() {
		xmlErrMu.Lock()
		xmlErrs = append(xmlErrs, err)
		xmlErrMu.Unlock()
		return
	}
	log.Warn("xml parse error", logger.Component("bodyparser"), logger.Error(err))
}

type xmlDecoder struct {
	log *slog.Logger
}

// XML returns the decoder for application/xml and text/xml.
// Decoding runs with the entity loader disabled and errors collected
// internally; both settings are restored afterwards. Malformed documents
// yield nil.
func XML(opts ...Option) Decoder {
	o := newOptions(opts)
	return &xmlDecoder{log: o.logger}
}

// HandlesCharset reports true: the XML declaration and the charset reader
// take care of non-UTF-8 documents.
func (d *xmlDecoder) HandlesCharset() bool { return true }

func (d *xmlDecoder) Decode(raw []byte) (any, error) {
	xmlScope.Lock()
	defer xmlScope.Unlock()

	prevLoader := DisableEntityLoader(true)
	prevErrors := UseInternalErrors(true)
	defer func() {
		DisableEntityLoader(prevLoader)
		ClearXMLErrors()
		UseInternalErrors(prevErrors)
	}()

	root, err := parseXML(raw)
	if err != nil {
		reportXMLError(d.log, err)
		d.log.Debug("xml body discarded", logger.Component("bodyparser"), logger.Errors(XMLErrors()...))
		return nil, nil
	}

	return &XMLElement{el: root}, nil
}

func parseXML(raw []byte) (*etree.Element, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel

	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, err
	}

	if EntityLoaderDisabled() && declaresEntities(doc) {
		return nil, ErrEntityDeclaration
	}

	root := doc.Root()
	if root == nil {
		return nil, ErrNoRootElement
	}
	return root, nil
}

func declaresEntities(doc *etree.Document) bool {
	for _, tok := range doc.Child {
		if d, ok := tok.(*etree.Directive); ok && strings.Contains(strings.ToUpper(d.Data), "<!ENTITY") {
			return true
		}
	}
	return false
}
