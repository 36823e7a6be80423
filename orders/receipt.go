package orders

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"fleur/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

func receiptSecret() []byte {
	if s := os.Getenv("RECEIPT_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("fleur-receipt-secret")
}

// ReceiptPayload builds the signed string embedded in the receipt QR:
// orderId|owner|timestamp|signature.
func ReceiptPayload(orderID, ownerID string, issuedAt time.Time) string {
	data := fmt.Sprintf("%s|%s|%d", orderID, ownerID, issuedAt.Unix())
	h := hmac.New(sha256.New, receiptSecret())
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))
	return fmt.Sprintf("%s|%s", data, sig)
}

// PrintReceipt streams a PDF receipt for one order, with a signed QR code
// for verification at pickup.
func (h *Handlers) PrintReceipt(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	order, err := h.recorder.FindByID(r.Context(), ps.ByName("orderid"))
	if errors.Is(err, ErrNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		log.Println("PrintReceipt lookup error:", err)
		http.Error(w, "Could not retrieve order", http.StatusInternalServerError)
		return
	}

	if !readableBy(order, utils.GetSessionKey(r)) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	qrPNG, err := qrcode.Encode(ReceiptPayload(order.OrderID, order.OwnerID, time.Now()), qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Fleur Order Receipt")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Order: %s", order.OrderID))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Placed: %s", order.CreatedAt.Format("2 Jan 2006 15:04")))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Status: %s", order.Status))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Items")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	for _, item := range order.Items {
		pdf.Cell(0, 7, fmt.Sprintf("%dx %s  -  $%.2f", item.Quantity, item.Name, item.UnitPrice*float64(item.Quantity)))
		pdf.Ln(6)
	}
	pdf.Ln(6)

	pdf.Cell(0, 7, fmt.Sprintf("Subtotal: $%.2f", order.Subtotal))
	pdf.Ln(6)
	if order.Discount > 0 {
		pdf.Cell(0, 7, fmt.Sprintf("Discount (%s): -$%.2f", order.PromoCode, order.Discount))
		pdf.Ln(6)
	}
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total: $%.2f", order.Total))
	pdf.Ln(12)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("receipt-qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("receipt-qr", 80, pdf.GetY(), 50, 50, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		log.Println("PrintReceipt pdf error:", err)
		http.Error(w, "Failed to generate receipt", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", order.OrderID))
	w.Write(buf.Bytes())
}
