package component

import (
	"go.uber.org/zap"

	"github.com/chrisuehlinger/htmlkit/css"
	"github.com/chrisuehlinger/htmlkit/dom"
)

// GetByID wraps the element with the given id, or returns nil.
func GetByID(doc *dom.Document, id string) *Element {
	if doc == nil {
		return nil
	}
	return Wrap(doc.GetElementById(id))
}

// GetBySelector wraps the first element matching selector. It returns nil
// when nothing matches or the selector is invalid.
func GetBySelector(doc *dom.Document, selector string) *Element {
	if doc == nil {
		return nil
	}
	el, err := css.Query(doc.AsNode(), selector)
	if err != nil {
		logger().Debug("Invalid selector.", zap.String("selector", selector), zap.Error(err))
		return nil
	}
	return Wrap(el)
}

// GetBySelectorAll wraps every element matching selector, in document
// order. An invalid selector yields an empty slice.
func GetBySelectorAll(doc *dom.Document, selector string) []*Element {
	result := []*Element{}
	if doc == nil {
		return result
	}
	els, err := css.QueryAll(doc.AsNode(), selector)
	if err != nil {
		logger().Debug("Invalid selector.", zap.String("selector", selector), zap.Error(err))
		return result
	}
	for _, el := range els {
		result = append(result, Wrap(el))
	}
	return result
}

// IncludeCSS appends <link rel="stylesheet" href=url> to the document head.
func IncludeCSS(doc *dom.Document, url string) {
	if doc == nil || doc.Head() == nil {
		return
	}
	New(doc, "link").
		SetAttr("rel", "stylesheet").
		SetAttr("href", url).
		AppendTo(doc.Head())
}

// IncludeJS appends <script src=url defer> to the document head.
func IncludeJS(doc *dom.Document, url string) {
	if doc == nil || doc.Head() == nil {
		return
	}
	New(doc, "script").
		SetAttr("src", url).
		SetAttr("defer", "").
		AppendTo(doc.Head())
}
