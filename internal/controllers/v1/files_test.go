package v1_test

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	v1 "github.com/rcbudget/backend/internal/controllers/v1"
	"github.com/rcbudget/backend/internal/models"
	ez_uuid "github.com/rcbudget/backend/internal/uuid"
	"github.com/rcbudget/backend/test"
)

func (suite *TestSuiteStandard) uploadTestInvoiceFile(invoiceID uuid.UUID, filename string, content []byte) v1.SpendingInvoiceFileResponse {
	body, headers := test.MultipartFile(suite.T(), filename, content)

	r := test.Request(suite.T(), http.MethodPost, fmt.Sprintf("http://example.com/v1/spending-invoices/%s/files", invoiceID), body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.SpendingInvoiceFileResponse
	test.DecodeResponse(suite.T(), &r, &response)

	return response
}

func (suite *TestSuiteStandard) TestInvoiceFileUpload() {
	invoice := suite.createTestSpendingInvoice(suite.T(), v1.SpendingInvoiceEditable{})

	content := []byte("%PDF-1.7 such and such")
	file := suite.uploadTestInvoiceFile(invoice.Data.ID, "invoice.pdf", content)

	assert := suite.Assert()
	assert.Equal("invoice.pdf", file.Data.Name)
	assert.Equal(invoice.Data.ID, file.Data.SpendingInvoiceID)
	assert.Equal(int64(len(content)), file.Data.Size)
	assert.Equal("application/octet-stream", file.Data.ContentType)
}

func (suite *TestSuiteStandard) TestInvoiceFileDownload() {
	invoice := suite.createTestSpendingInvoice(suite.T(), v1.SpendingInvoiceEditable{})

	content := []byte("%PDF-1.7 invoice body")
	file := suite.uploadTestInvoiceFile(invoice.Data.ID, "invoice.pdf", content)

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/spending-invoice-files/%s", file.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	assert := suite.Assert()
	assert.Equal(`attachment; filename="invoice.pdf"`, r.Header().Get("Content-Disposition"))
	assert.Equal("application/octet-stream", r.Header().Get("Content-Type"))
	assert.Equal(content, r.Body.Bytes())
}

func (suite *TestSuiteStandard) TestInvoiceFileUploadWithoutFile() {
	invoice := suite.createTestSpendingInvoice(suite.T(), v1.SpendingInvoiceEditable{})

	r := test.Request(suite.T(), http.MethodPost, fmt.Sprintf("http://example.com/v1/spending-invoices/%s/files", invoice.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response struct {
		Error string `json:"error"`
	}
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("you must send a file to this endpoint", response.Error)
}

func (suite *TestSuiteStandard) TestInvoiceFileUploadInvoiceMissing() {
	body, headers := test.MultipartFile(suite.T(), "invoice.pdf", []byte("orphan"))

	r := test.Request(suite.T(), http.MethodPost, fmt.Sprintf("http://example.com/v1/spending-invoices/%s/files", ez_uuid.NewString()), body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestInvoiceFileDelete() {
	invoice := suite.createTestSpendingInvoice(suite.T(), v1.SpendingInvoiceEditable{})
	file := suite.uploadTestInvoiceFile(invoice.Data.ID, "invoice.pdf", []byte("bytes"))

	url := fmt.Sprintf("http://example.com/v1/spending-invoice-files/%s", file.Data.ID)

	r := test.Request(suite.T(), http.MethodDelete, url, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, url, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestInvoiceDeleteRemovesFiles() {
	invoice := suite.createTestSpendingInvoice(suite.T(), v1.SpendingInvoiceEditable{})
	suite.uploadTestInvoiceFile(invoice.Data.ID, "invoice.pdf", []byte("bytes"))

	r := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/v1/spending-invoices/%s", invoice.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	var count int64
	err := models.DB.Model(&models.SpendingInvoiceFile{}).Where("spending_invoice_id = ?", invoice.Data.ID).Count(&count).Error
	suite.Assert().Nil(err)
	suite.Assert().Equal(int64(0), count)
}

func (suite *TestSuiteStandard) TestProcurementEventFileRoundTrip() {
	event := suite.createTestProcurementEvent(suite.T(), v1.ProcurementEventEditable{EventType: "rfq-issued"})

	content := []byte("%PDF-1.7 rfq")
	body, headers := test.MultipartFile(suite.T(), "rfq.pdf", content)

	r := test.Request(suite.T(), http.MethodPost, fmt.Sprintf("http://example.com/v1/procurement-events/%s/files", event.Data.ID), body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var file v1.ProcurementEventFileResponse
	test.DecodeResponse(suite.T(), &r, &file)
	suite.Assert().Equal(event.Data.ID, file.Data.ProcurementEventID)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/procurement-event-files/%s", file.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	suite.Assert().Equal(content, r.Body.Bytes())
}

func (suite *TestSuiteStandard) TestProcurementQuoteFileRoundTrip() {
	quote := suite.createTestProcurementQuote(suite.T(), v1.ProcurementQuoteEditable{Vendor: "ACME Industrial"})

	content := []byte("%PDF-1.7 quote")
	body, headers := test.MultipartFile(suite.T(), "quote-acme.pdf", content)

	r := test.Request(suite.T(), http.MethodPost, fmt.Sprintf("http://example.com/v1/procurement-quotes/%s/files", quote.Data.ID), body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var file v1.ProcurementQuoteFileResponse
	test.DecodeResponse(suite.T(), &r, &file)
	suite.Assert().Equal(quote.Data.ID, file.Data.ProcurementQuoteID)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/procurement-quote-files/%s", file.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	suite.Assert().Equal(content, r.Body.Bytes())
}

func (suite *TestSuiteStandard) TestProcurementItemDeleteRemovesChildren() {
	item := suite.createTestProcurementItem(suite.T(), v1.ProcurementItemEditable{})
	event := suite.createTestProcurementEvent(suite.T(), v1.ProcurementEventEditable{
		ProcurementItemID: ez_uuid.UUID{UUID: item.Data.ID},
		EventType:         "rfq-issued",
	})
	suite.createTestProcurementQuote(suite.T(), v1.ProcurementQuoteEditable{
		ProcurementItemID: ez_uuid.UUID{UUID: item.Data.ID},
		Vendor:            "ACME Industrial",
	})

	content := []byte("%PDF-1.7 rfq")
	body, headers := test.MultipartFile(suite.T(), "rfq.pdf", content)
	r := test.Request(suite.T(), http.MethodPost, fmt.Sprintf("http://example.com/v1/procurement-events/%s/files", event.Data.ID), body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	r = test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/v1/procurement-items/%s", item.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	assert := suite.Assert()

	var count int64
	assert.Nil(models.DB.Model(&models.ProcurementEvent{}).Where("procurement_item_id = ?", item.Data.ID).Count(&count).Error)
	assert.Equal(int64(0), count)

	assert.Nil(models.DB.Model(&models.ProcurementQuote{}).Where("procurement_item_id = ?", item.Data.ID).Count(&count).Error)
	assert.Equal(int64(0), count)

	assert.Nil(models.DB.Model(&models.ProcurementEventFile{}).Where("procurement_event_id = ?", event.Data.ID).Count(&count).Error)
	assert.Equal(int64(0), count)
}
