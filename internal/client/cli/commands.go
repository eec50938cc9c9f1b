package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/scpcatalog/internal/client/api"
	"github.com/dmitrijs2005/scpcatalog/internal/client/forms"
	"github.com/dmitrijs2005/scpcatalog/internal/client/listview"
	"github.com/dmitrijs2005/scpcatalog/internal/models"
)

var errUsage = errors.New("usage")

// fail reports err to the user and returns it.
func (a *App) fail(err error) error {
	var fe forms.FieldErrors
	if errors.As(err, &fe) {
		keys := make([]string, 0, len(fe))
		for k := range fe {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			a.log.Println(formatError(fe[k]))
		}
		return err
	}
	a.log.Println(formatError(err.Error()))
	return err
}

func (a *App) List(ctx context.Context) error {
	v, err := a.engine.View()
	if err != nil {
		return a.fail(err)
	}
	fmt.Fprintln(a.out, renderView(v, a.width()))
	return nil
}

func (a *App) NextPage(ctx context.Context) error {
	if !a.engine.NextPage() {
		fmt.Fprintln(a.out, styleMuted.Render("Already on the last page."))
		return nil
	}
	return a.List(ctx)
}

func (a *App) PrevPage(ctx context.Context) error {
	if !a.engine.PrevPage() {
		fmt.Fprintln(a.out, styleMuted.Render("Already on the first page."))
		return nil
	}
	return a.List(ctx)
}

func (a *App) GoToPage(ctx context.Context, page string) error {
	k, err := strconv.Atoi(strings.TrimSpace(page))
	if err != nil {
		return a.fail(fmt.Errorf("%w: page <number>", errUsage))
	}
	if !a.engine.SetPage(k) {
		fmt.Fprintln(a.out, styleMuted.Render(fmt.Sprintf("Page %d does not exist.", k)))
		return nil
	}
	return a.List(ctx)
}

func (a *App) Search(ctx context.Context, query string) error {
	if err := a.state.SetQuery(query); err != nil {
		return a.fail(err)
	}
	return a.List(ctx)
}

func (a *App) Sort(ctx context.Context, key string) error {
	k, ok := listview.ParseSortKey(key)
	if !ok {
		return a.fail(fmt.Errorf("%w: sort none|item|class", errUsage))
	}
	if err := a.engine.SetSort(k); err != nil {
		return a.fail(err)
	}
	return a.List(ctx)
}

func (a *App) Reload(ctx context.Context) error {
	if err := a.engine.Load(ctx); err != nil {
		return a.fail(err)
	}
	fmt.Fprintln(a.out, styleMuted.Render(fmt.Sprintf("Loaded %d entries.", len(a.engine.Entries()))))
	return a.List(ctx)
}

// resolve finds an entry by its row number on the current page or by id.
func (a *App) resolve(ref string) (models.Entry, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return models.Entry{}, fmt.Errorf("%w: an entry row number or id is required", errUsage)
	}

	if n, err := strconv.Atoi(ref); err == nil {
		v, err := a.engine.View()
		if err != nil {
			return models.Entry{}, err
		}
		if n >= 1 && n <= len(v.Entries) {
			return v.Entries[n-1], nil
		}
	}

	for _, e := range a.engine.Entries() {
		if e.ID == ref {
			return e, nil
		}
	}
	return models.Entry{}, listview.ErrUnknownID
}

// Show fetches the entry again so the image link is freshly signed.
func (a *App) Show(ctx context.Context, ref string) error {
	e, err := a.resolve(ref)
	if err != nil {
		return a.fail(err)
	}

	fresh, err := a.client.FetchByID(ctx, e.ID)
	if err != nil {
		return a.fail(err)
	}
	fmt.Fprintln(a.out, renderEntry(fresh, a.width()))
	return nil
}

func (a *App) askImage() (*api.ImageFile, error) {
	path, err := GetSimpleText(a.reader, "Image file path (optional, Enter to skip)", a.out)
	if err != nil || path == "" {
		return nil, err
	}
	return readImageFile(path)
}

func (a *App) Add(ctx context.Context) error {
	form := forms.NewCreateForm(a.client, a.client.ItemPrefix())

	var err error
	if form.ItemNumber, err = GetSimpleText(a.reader, "Item number (1-9999)", a.out); err != nil {
		return a.fail(err)
	}
	if form.Class, err = GetSimpleText(a.reader, "Class (Safe, Euclid, Keter)", a.out); err != nil {
		return a.fail(err)
	}
	if form.Description, err = GetMultiline(a.reader, "Description", a.out); err != nil {
		return a.fail(err)
	}
	if form.Containment, err = GetMultiline(a.reader, "Special containment procedures", a.out); err != nil {
		return a.fail(err)
	}
	if form.Image, err = a.askImage(); err != nil {
		return a.fail(err)
	}

	created, err := form.Submit(ctx)
	if err != nil {
		return a.fail(err)
	}

	fmt.Fprintln(a.out, formatSuccess(fmt.Sprintf("Created %s (%s). Type 'reload' to see it in the list.", created.Item, created.ID)))
	return nil
}

func (a *App) Edit(ctx context.Context, ref string) error {
	e, err := a.resolve(ref)
	if err != nil {
		return a.fail(err)
	}

	flow, err := forms.NewEditFlow(a.client, a.engine, e.ID)
	if err != nil {
		return a.fail(err)
	}
	defer flow.Close()

	d := &flow.Draft
	if d.Item, err = GetTextOrKeep(a.reader, "Item", d.Item, a.out); err != nil {
		return a.fail(err)
	}
	class, err := GetTextOrKeep(a.reader, "Class", string(d.Class), a.out)
	if err != nil {
		return a.fail(err)
	}
	d.Class = models.Class(class)
	if d.Description, err = GetTextOrKeep(a.reader, "Description", d.Description, a.out); err != nil {
		return a.fail(err)
	}
	if d.Containment, err = GetTextOrKeep(a.reader, "Containment", d.Containment, a.out); err != nil {
		return a.fail(err)
	}
	if flow.Image, err = a.askImage(); err != nil {
		return a.fail(err)
	}

	updated, err := flow.Save(ctx)
	if err != nil {
		return a.fail(err)
	}

	fmt.Fprintln(a.out, formatSuccess("Updated "+updated.Item))
	fmt.Fprintln(a.out, renderEntry(updated, a.width()))
	return nil
}

func (a *App) Delete(ctx context.Context, ref string) error {
	e, err := a.resolve(ref)
	if err != nil {
		return a.fail(err)
	}

	flow, err := forms.NewEditFlow(a.client, a.engine, e.ID)
	if err != nil {
		return a.fail(err)
	}
	defer flow.Close()

	if _, err := flow.Delete(ctx); err != nil {
		return a.fail(err)
	}

	answer, err := GetSimpleText(a.reader, fmt.Sprintf("Delete %s? Type 'delete' again to confirm", e.Item), a.out)
	if err != nil {
		flow.Cancel()
		return a.fail(err)
	}
	if !strings.EqualFold(answer, "delete") {
		flow.Cancel()
		fmt.Fprintln(a.out, styleMuted.Render("Delete cancelled."))
		return nil
	}

	deleted, err := flow.Delete(ctx)
	if err != nil {
		return a.fail(err)
	}
	if deleted {
		fmt.Fprintln(a.out, formatSuccess("SCP deleted successfully"))
	}
	return nil
}
