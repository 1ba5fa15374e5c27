package viewmodel

import (
	"context"
	"errors"
	"strings"

	"nurse-directory/internal/model"
	"nurse-directory/internal/nurseapi"
)

// RegistrationForm is the in-progress registration: field values, the last
// error and whether the attempt completed.
type RegistrationForm struct {
	Name     string
	Surname  string
	Email    string
	Username string
	Password string
	// Profile is an index into the avatar set.
	Profile      byte
	ErrorMessage string
	Successful   bool
}

// Nurse builds the record to submit. It carries no id.
func (f RegistrationForm) Nurse() model.Nurse {
	return model.Nurse{
		Name:     strings.TrimSpace(f.Name),
		Surname:  strings.TrimSpace(f.Surname),
		Email:    strings.TrimSpace(f.Email),
		Username: strings.TrimSpace(f.Username),
		Password: f.Password,
		Profile:  []byte{f.Profile},
	}
}

func (vm *NurseViewModel) editForm(fn func(*RegistrationForm)) {
	vm.Form.Update(func(f RegistrationForm) RegistrationForm {
		fn(&f)
		f.ErrorMessage = ""
		return f
	})
}

func (vm *NurseViewModel) UpdateName(v string) {
	vm.editForm(func(f *RegistrationForm) { f.Name = v })
}

func (vm *NurseViewModel) UpdateSurname(v string) {
	vm.editForm(func(f *RegistrationForm) { f.Surname = v })
}

func (vm *NurseViewModel) UpdateEmail(v string) {
	vm.editForm(func(f *RegistrationForm) { f.Email = strings.TrimSpace(v) })
}

func (vm *NurseViewModel) UpdateUsername(v string) {
	vm.editForm(func(f *RegistrationForm) { f.Username = strings.TrimSpace(v) })
}

func (vm *NurseViewModel) UpdatePassword(v string) {
	vm.editForm(func(f *RegistrationForm) { f.Password = v })
}

func (vm *NurseViewModel) UpdateProfile(idx byte) {
	vm.editForm(func(f *RegistrationForm) { f.Profile = idx })
}

// Register validates the form and submits it. The checks run in a fixed
// order and the first failure stops the attempt: required fields, email
// format, email/username uniqueness against the loaded roster, then the
// create request.
func (vm *NurseViewModel) Register(ctx context.Context) {
	form := vm.Form.Get()
	gen := vm.registerGen.begin(nil)

	if verr := validateRegistration(form, vm.roster()); verr != nil {
		vm.commit(&vm.registerGen, gen, func() {
			vm.Form.Update(func(f RegistrationForm) RegistrationForm {
				f.ErrorMessage = verr.Message
				f.Successful = false
				return f
			})
		})
		return
	}

	rctx, cancel := vm.scope(ctx)
	defer cancel()

	_, err := vm.api.Create(rctx, form.Nurse())
	if err != nil {
		vm.logFailure("create", err)
	}

	committed := vm.commit(&vm.registerGen, gen, func() {
		vm.Form.Update(func(f RegistrationForm) RegistrationForm {
			if err != nil {
				f.ErrorMessage = registrationError(err)
				f.Successful = false
			} else {
				f.ErrorMessage = ""
				f.Successful = true
			}
			return f
		})
	})
	if committed && err == nil {
		vm.listStale.Store(true)
		vm.log.Info().Str("user", form.Username).Msg("nurse registered")
	}
}

// RegistrationComplete resets the form after the UI has acknowledged success,
// or when the user cancels.
func (vm *NurseViewModel) RegistrationComplete() {
	vm.registerGen.reset(func() {
		vm.Form.Set(RegistrationForm{})
	})
}

// ClearErrorMessage drops the form's error without touching field values.
func (vm *NurseViewModel) ClearErrorMessage() {
	vm.Form.Update(func(f RegistrationForm) RegistrationForm {
		f.ErrorMessage = ""
		return f
	})
}

func validateRegistration(f RegistrationForm, roster []model.Nurse) *ValidationError {
	if field := requireFields(
		[2]string{"name", f.Name},
		[2]string{"surname", f.Surname},
		[2]string{"email", f.Email},
		[2]string{"username", f.Username},
		[2]string{"password", f.Password},
	); field != "" {
		return &ValidationError{Field: field, Message: MsgRequiredFields}
	}

	email := strings.TrimSpace(f.Email)
	if !validEmail(email) {
		return &ValidationError{Field: "email", Message: MsgInvalidEmail}
	}

	username := strings.TrimSpace(f.Username)
	for _, n := range roster {
		if strings.EqualFold(n.Email, email) {
			return &ValidationError{Field: "email", Message: MsgEmailTaken}
		}
	}
	for _, n := range roster {
		if strings.EqualFold(n.Username, username) {
			return &ValidationError{Field: "username", Message: MsgUsernameTaken}
		}
	}
	return nil
}

// registrationError names a backend conflict the same way the local
// uniqueness check does.
func registrationError(err error) string {
	switch {
	case errors.Is(err, nurseapi.ErrEmailTaken):
		return MsgEmailTaken
	case errors.Is(err, nurseapi.ErrUsernameTaken):
		return MsgUsernameTaken
	default:
		return describeError(err)
	}
}
