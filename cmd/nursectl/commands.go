package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"nurse-directory/internal/model"
	"nurse-directory/internal/state"
	"nurse-directory/internal/viewmodel"
)

// withViewModel runs fn against a view model that's closed afterwards.
func withViewModel(g *globalFlags, fn func(vm *viewmodel.NurseViewModel) error) error {
	vm, err := newViewModel(g)
	if err != nil {
		return err
	}
	defer vm.Close()
	return fn(vm)
}

// result turns a terminal operation into its value or an error.
func result[T any](op state.Operation[T]) (T, error) {
	if v, ok := op.Value(); ok {
		return v, nil
	}
	var zero T
	if op.IsError() {
		return zero, errors.New(op.Message())
	}
	return zero, fmt.Errorf("operation did not finish (%s)", op)
}

func printNurses(w io.Writer, nurses []model.Nurse) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tUSER\tEMAIL\tAVATAR")
	for _, n := range nurses {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\n", n.ID, n.FullName(), n.Username, n.Email, n.AvatarIndex())
	}
	tw.Flush()
}

func printNurse(w io.Writer, n model.Nurse) {
	printNurses(w, []model.Nurse{n})
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid nurse id %q", arg)
	}
	return id, nil
}

func listCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every nurse",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withViewModel(g, func(vm *viewmodel.NurseViewModel) error {
				vm.LoadList(cmd.Context())
				nurses, err := result(vm.List.Get())
				if err != nil {
					return err
				}
				printNurses(cmd.OutOrStdout(), nurses)
				return nil
			})
		},
	}
}

func searchCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Filter the roster by name or surname",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withViewModel(g, func(vm *viewmodel.NurseViewModel) error {
				vm.UpdateSearchQuery(args[0])
				vm.LoadList(cmd.Context())
				if _, err := result(vm.List.Get()); err != nil {
					return err
				}
				printNurses(cmd.OutOrStdout(), vm.Search.Get().Results)
				return nil
			})
		},
	}
}

func showCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one nurse by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withViewModel(g, func(vm *viewmodel.NurseViewModel) error {
				vm.GetByID(cmd.Context(), id)
				n, err := result(vm.Nurse.Get())
				if err != nil {
					return err
				}
				printNurse(cmd.OutOrStdout(), n)
				return nil
			})
		},
	}
}

func lookupCmd(g *globalFlags) *cobra.Command {
	var name, user string
	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Look up one nurse by exact name or username",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withViewModel(g, func(vm *viewmodel.NurseViewModel) error {
				if user != "" {
					vm.LookupByUsername(cmd.Context(), user)
				} else {
					vm.LookupByName(cmd.Context(), name)
				}
				n, err := result(vm.Nurse.Get())
				if err != nil {
					return err
				}
				printNurse(cmd.OutOrStdout(), n)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Exact first name")
	cmd.Flags().StringVar(&user, "user", "", "Exact username")
	cmd.MarkFlagsOneRequired("name", "user")
	cmd.MarkFlagsMutuallyExclusive("name", "user")
	return cmd
}

func loginCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "login <user> <password>",
		Short: "Check credentials and show the signed-in nurse",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withViewModel(g, func(vm *viewmodel.NurseViewModel) error {
				vm.Login(cmd.Context(), args[0], args[1])
				ev := <-vm.LoginEvents.C()
				if !ev.Success {
					return fmt.Errorf("login failed for %q", ev.Username)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s\n", ev.Username)
				if n, err := result(vm.Session.Get()); err == nil {
					printNurse(cmd.OutOrStdout(), n)
				}
				return nil
			})
		},
	}
}

type nurseFlags struct {
	name, surname, email, user, password string
	avatar                               uint8
}

func (f *nurseFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "First name")
	cmd.Flags().StringVar(&f.surname, "surname", "", "Surname")
	cmd.Flags().StringVar(&f.email, "email", "", "Email address")
	cmd.Flags().StringVar(&f.user, "user", "", "Username")
	cmd.Flags().StringVar(&f.password, "password", "", "Password")
	cmd.Flags().Uint8Var(&f.avatar, "avatar", 0, fmt.Sprintf("Avatar index (0-%d)", model.AvatarCount-1))
}

func registerCmd(g *globalFlags) *cobra.Command {
	var f nurseFlags
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new nurse",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withViewModel(g, func(vm *viewmodel.NurseViewModel) error {
				// The loaded roster backs the uniqueness checks.
				vm.LoadList(cmd.Context())

				vm.UpdateName(f.name)
				vm.UpdateSurname(f.surname)
				vm.UpdateEmail(f.email)
				vm.UpdateUsername(f.user)
				vm.UpdatePassword(f.password)
				vm.UpdateProfile(f.avatar)
				vm.Register(cmd.Context())

				form := vm.Form.Get()
				if !form.Successful {
					return errors.New(form.ErrorMessage)
				}
				vm.RegistrationComplete()
				fmt.Fprintf(cmd.OutOrStdout(), "registered %s\n", form.Username)
				return nil
			})
		},
	}
	f.bind(cmd)
	return cmd
}

func updateCmd(g *globalFlags) *cobra.Command {
	var f nurseFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a nurse's details; unset flags keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withViewModel(g, func(vm *viewmodel.NurseViewModel) error {
				vm.GetByID(cmd.Context(), id)
				n, err := result(vm.Nurse.Get())
				if err != nil {
					return err
				}

				flags := cmd.Flags()
				if flags.Changed("name") {
					n.Name = f.name
				}
				if flags.Changed("surname") {
					n.Surname = f.surname
				}
				if flags.Changed("email") {
					n.Email = f.email
				}
				if flags.Changed("user") {
					n.Username = f.user
				}
				if flags.Changed("avatar") {
					n.Profile = []byte{f.avatar}
				}
				n.Password = f.password

				vm.UpdateNurse(cmd.Context(), n)
				updated, err := result(vm.Update.Get())
				if err != nil {
					return err
				}
				printNurse(cmd.OutOrStdout(), updated)
				return nil
			})
		},
	}
	f.bind(cmd)
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func deleteCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a nurse",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withViewModel(g, func(vm *viewmodel.NurseViewModel) error {
				vm.DeleteNurse(cmd.Context(), id)
				if _, err := result(vm.Delete.Get()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted nurse %d\n", id)
				return nil
			})
		},
	}
}
