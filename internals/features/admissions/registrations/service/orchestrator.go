package service

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"baetelanshar_backend/internals/constants"
	helperOSS "baetelanshar_backend/internals/helpers/oss"

	"baetelanshar_backend/internals/features/admissions/registrations/dto"
)

// Orchestrator menjalankan submit draft: gerbang validasi penuh tanpa
// efek samping, upload dokumen berurutan, lalu satu panggilan
// provisioning. Draft baru dibuang setelah semuanya sukses; kegagalan
// membiarkan draft utuh supaya pendaftar bisa mencoba lagi.
type Orchestrator struct {
	Staging     *StagingStore
	OSS         *helperOSS.Service
	Provisioner *Provisioner
}

func NewOrchestrator(staging *StagingStore, oss *helperOSS.Service, provisioner *Provisioner) *Orchestrator {
	return &Orchestrator{Staging: staging, OSS: oss, Provisioner: provisioner}
}

// Submit memproses satu draft sampai tuntas. fieldErrs terisi bila
// gerbang validasi menolak (belum ada efek samping apa pun); err untuk
// kegagalan upload/provisioning.
func (o *Orchestrator) Submit(ctx context.Context, draftID uuid.UUID) (*dto.RegisterStudentResponse, map[string][]string, error) {
	draft, err := o.Staging.Get(draftID)
	if err != nil {
		return nil, nil, err
	}

	// gerbang: seluruh form + kelengkapan 5 dokumen, sebelum network
	fieldErrs := draft.Form.ValidateAll()
	if missing := draft.MissingCategories(); len(missing) > 0 {
		if fieldErrs == nil {
			fieldErrs = map[string][]string{}
		}
		for _, cat := range missing {
			fieldErrs["documents"] = append(fieldErrs["documents"],
				fmt.Sprintf("Dokumen %s belum diunggah.", constants.DocumentLabels[cat]))
		}
	}
	if fieldErrs != nil {
		return nil, fieldErrs, nil
	}

	attempt, err := o.Provisioner.OpenAttempt(draft.Form.ParentEmail, draft.Form.StudentName, nil)
	if err != nil {
		return nil, nil, err
	}

	docMap := dto.DocumentMap{}
	for _, category := range constants.DocumentCategories {
		doc := draft.Documents[category]
		key := helperOSS.DocumentObjectKey(draft.Form.ParentEmail, category, doc.Filename)
		if err := o.OSS.UploadStream(ctx, key, bytes.NewReader(doc.Data), doc.ContentType); err != nil {
			cause := fmt.Errorf("gagal mengunggah %s, silakan coba lagi: %w",
				constants.DocumentLabels[category], err)
			o.Provisioner.FailAttempt(attempt.ID, cause)
			log.Printf("[SUBMIT] draft %s upload %s gagal: %v", draft.ID, category, err)
			return nil, nil, cause
		}
		docMap[category] = dto.DocumentRef{Path: key, Type: doc.ContentType}
		// path dicatat per upload; reaper tahu persis apa yang sudah masuk
		o.Provisioner.RecordAttemptPaths(attempt.ID, docMap)
	}

	req, err := draft.Form.ToRegisterRequest(docMap)
	if err != nil {
		o.Provisioner.FailAttempt(attempt.ID, err)
		return nil, nil, err
	}

	resp, err := o.Provisioner.RegisterStaged(ctx, attempt, req)
	if err != nil {
		return nil, nil, err
	}

	o.Staging.Drop(draft.ID)
	log.Printf("[SUBMIT] draft %s selesai, registrasi %s", draft.ID, resp.RegistrationID)
	return resp, nil, nil
}
