package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/anjiri1684/web3_university/ledger"
	"github.com/anjiri1684/web3_university/models"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompletionLedger is the slice of the ledger gateway the certificate flow
// drives.
type CompletionLedger interface {
	CompleteCourse(ctx context.Context, student, courseID, metadataURI string) (*ledger.TxResult, error)
}

// CertificateService renders a completion certificate, uploads it and mints
// the certificate NFT with the upload URL as metadata.
type CertificateService struct {
	db            *gorm.DB
	users         *UserService
	courses       *CourseStore
	chain         CompletionLedger
	cloudinaryURL string
}

func NewCertificateService(db *gorm.DB, users *UserService, courses *CourseStore, chain CompletionLedger, cloudinaryURL string) *CertificateService {
	return &CertificateService{
		db:            db,
		users:         users,
		courses:       courses,
		chain:         chain,
		cloudinaryURL: cloudinaryURL,
	}
}

const certificateTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><style>
body { font-family: Georgia, serif; text-align: center; padding: 80px; border: 12px double #2c3e50; }
h1 { font-size: 42px; color: #2c3e50; }
.student { font-size: 32px; margin: 30px 0; }
.course { font-size: 24px; font-style: italic; }
.date { margin-top: 50px; color: #7f8c8d; }
</style></head>
<body>
  <h1>Certificate of Completion</h1>
  <p>This certifies that</p>
  <div class="student">{{.StudentName}}</div>
  <p>has successfully completed</p>
  <div class="course">{{.CourseTitle}}</div>
  <div class="date">{{.CompletionDate}}</div>
</body>
</html>`

// CompleteCourse runs the whole completion flow for a purchased course. The
// on-chain mint enforces the purchase and duplicate-certificate guards.
func (s *CertificateService) CompleteCourse(ctx context.Context, courseID uuid.UUID, studentWallet string) (*models.Certificate, error) {
	course, err := s.courses.GetByID(courseID)
	if err != nil {
		return nil, err
	}

	studentName := studentWallet
	if user, err := s.users.FindByWallet(studentWallet); err == nil && user.Username != "" {
		studentName = user.Username
	}

	htmlData, err := renderCertificateHTML(studentName, course.Title)
	if err != nil {
		return nil, fmt.Errorf("failed to render certificate HTML: %w", err)
	}

	pdfBytes, err := generatePDFFromHTML(ctx, htmlData)
	if err != nil {
		return nil, fmt.Errorf("failed to generate certificate PDF: %w", err)
	}

	metadataURL, err := s.uploadToCloudinary(ctx, pdfBytes, studentWallet)
	if err != nil {
		return nil, fmt.Errorf("failed to upload certificate: %w", err)
	}

	res, err := s.chain.CompleteCourse(ctx, studentWallet, courseID.String(), metadataURL)
	if err != nil {
		return nil, fmt.Errorf("on-chain certificate mint failed: %w", err)
	}

	cert := &models.Certificate{
		CourseID:             courseID,
		StudentWalletAddress: studentWallet,
		CourseTitle:          course.Title,
		MetadataURL:          metadataURL,
		TransactionHash:      res.Hash,
		CompletionDate:       time.Now(),
	}
	if err := s.db.Create(cert).Error; err != nil {
		return nil, fmt.Errorf("failed to store certificate record: %w", err)
	}
	return cert, nil
}

func renderCertificateHTML(studentName, courseTitle string) (string, error) {
	tmpl, err := template.New("certificate").Parse(certificateTemplate)
	if err != nil {
		return "", err
	}

	data := struct {
		StudentName    string
		CourseTitle    string
		CompletionDate string
	}{
		StudentName:    studentName,
		CourseTitle:    courseTitle,
		CompletionDate: time.Now().Format("January 2, 2006"),
	}

	var renderedHTML bytes.Buffer
	if err := tmpl.Execute(&renderedHTML, data); err != nil {
		return "", err
	}
	return renderedHTML.String(), nil
}

func generatePDFFromHTML(ctx context.Context, htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(ctx)
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func (s *CertificateService) uploadToCloudinary(ctx context.Context, fileBytes []byte, studentWallet string) (string, error) {
	cld, err := cloudinary.NewFromURL(s.cloudinaryURL)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("certificates/%s_%s", studentWallet, uuid.New().String()),
		Folder:       "web3_university_certificates",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}
	return uploadResult.SecureURL, nil
}
