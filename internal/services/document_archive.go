package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"ecsbilling/internal/models"

	"github.com/sirupsen/logrus"
)

const pdfContentType = "application/pdf"

// ArchivedDocument is a rendered document stored in object storage.
type ArchivedDocument struct {
	Number     string    `json:"document_number"`
	ObjectName string    `json:"object_name"`
	Size       int64     `json:"size"`
	URL        string    `json:"url"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// DocumentArchive renders stored documents and keeps the PDFs in a bucket.
type DocumentArchive struct {
	renderer DocumentRenderer
	store    MinioService
	bucket   string
	urlTTL   time.Duration
	now      func() time.Time
	log      *logrus.Entry
}

func NewDocumentArchive(renderer DocumentRenderer, store MinioService, bucket string, urlTTL time.Duration, log *logrus.Entry) *DocumentArchive {
	return &DocumentArchive{
		renderer: renderer,
		store:    store,
		bucket:   bucket,
		urlTTL:   urlTTL,
		now:      time.Now,
		log:      log.WithField("component", "document_archive"),
	}
}

// ObjectName is the bucket key of a document: {kind}/{fy}/{number}.pdf with
// the number's slashes replaced by dashes.
func ObjectName(kind models.DocumentKind, financialYear, number string) string {
	return fmt.Sprintf("%s/%s/%s.pdf", kind, financialYear, strings.ReplaceAll(number, "/", "-"))
}

func (a *DocumentArchive) ArchiveInvoice(ctx context.Context, invoice *models.Invoice) (*ArchivedDocument, error) {
	data, err := a.renderer.RenderInvoice(invoice)
	if err != nil {
		return nil, err
	}
	return a.put(ctx, ObjectName(models.KindInvoice, invoice.FinancialYear, invoice.InvoiceNumber), invoice.InvoiceNumber, data)
}

func (a *DocumentArchive) ArchivePurchaseOrder(ctx context.Context, po *models.PurchaseOrder) (*ArchivedDocument, error) {
	data, err := a.renderer.RenderPurchaseOrder(po)
	if err != nil {
		return nil, err
	}
	return a.put(ctx, ObjectName(models.KindPurchaseOrder, po.FinancialYear, po.PONumber), po.PONumber, data)
}

func (a *DocumentArchive) put(ctx context.Context, objectName, number string, data []byte) (*ArchivedDocument, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("rendered %s is empty", number)
	}
	if err := a.store.UploadObject(ctx, a.bucket, objectName, bytes.NewReader(data), int64(len(data)), pdfContentType); err != nil {
		return nil, fmt.Errorf("upload %s: %w", objectName, err)
	}
	url, err := a.store.GetPresignedURL(ctx, a.bucket, objectName, a.urlTTL)
	if err != nil {
		return nil, fmt.Errorf("presign %s: %w", objectName, err)
	}

	a.log.WithFields(logrus.Fields{"document_number": number, "object": objectName, "size": len(data)}).Info("document archived")
	return &ArchivedDocument{
		Number:     number,
		ObjectName: objectName,
		Size:       int64(len(data)),
		URL:        url,
		ExpiresAt:  a.now().Add(a.urlTTL),
	}, nil
}

// Remove deletes an archived PDF. Missing objects are not an error in MinIO.
func (a *DocumentArchive) Remove(ctx context.Context, objectName string) error {
	return a.store.DeleteObject(ctx, a.bucket, objectName)
}

func (a *DocumentArchive) EnsureBucket(ctx context.Context) error {
	return a.store.EnsureBucketExists(ctx, a.bucket)
}

// Check reports whether the archive bucket is reachable and present.
func (a *DocumentArchive) Check(ctx context.Context) error {
	found, err := a.store.BucketExists(ctx, a.bucket)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("bucket %s does not exist", a.bucket)
	}
	return nil
}
