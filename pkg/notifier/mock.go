package notifier

import (
	"context"
	"log"
)

// MockSMS logs instead of sending. Development only.
type MockSMS struct{}

func NewMockSMS() *MockSMS { return &MockSMS{} }

func (m *MockSMS) SendOTPSMS(_ context.Context, phoneNumber, code string) error {
	log.Printf("---------- MOCK SMS ----------")
	log.Printf("To: %s", phoneNumber)
	log.Printf("کد تایید سامانه پرستاران: %s", code)
	log.Printf("این کد تا ۱۵ دقیقه معتبر است.")
	log.Printf("------------------------------")
	return nil
}

// MockEmail logs instead of sending. Development only.
type MockEmail struct{}

func NewMockEmail() *MockEmail { return &MockEmail{} }

func (m *MockEmail) SendOTPEmail(_ context.Context, email, code string) error {
	log.Printf("---------- MOCK EMAIL ----------")
	log.Printf("To: %s", email)
	log.Printf("کد تایید ایمیل شما: %s", code)
	log.Printf("--------------------------------")
	return nil
}

func (m *MockEmail) SendMagicLinkEmail(_ context.Context, email, link string) error {
	log.Printf("---------- MOCK EMAIL ----------")
	log.Printf("To: %s", email)
	log.Printf("لینک ورود: %s", link)
	log.Printf("--------------------------------")
	return nil
}
