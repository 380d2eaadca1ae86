package cookbook_test

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"philcali.me/mealplanner/internal/cookbook"
	"philcali.me/mealplanner/internal/data"
	"philcali.me/mealplanner/internal/exceptions"
	"philcali.me/mealplanner/internal/notifications"
)

type clock struct {
	now time.Time
}

func (c *clock) tick() time.Time {
	c.now = c.now.Add(time.Second)
	return c.now
}

type ownedRow[T interface{}] struct {
	owner int64
	value T
}

// ownedRows mimics the owner scoped repositories: a foreign id is missing.
type ownedRows[T interface{}] struct {
	resource string
	nextId   int64
	rows     map[int64]ownedRow[T]
}

func newOwnedRows[T interface{}](resource string) *ownedRows[T] {
	return &ownedRows[T]{resource: resource, rows: make(map[int64]ownedRow[T])}
}

func (o *ownedRows[T]) id() int64 {
	o.nextId++
	return o.nextId
}

func (o *ownedRows[T]) get(owner int64, id int64) (T, error) {
	row, ok := o.rows[id]
	if !ok || row.owner != owner {
		var empty T
		return empty, exceptions.NotFound(o.resource, strconv.FormatInt(id, 10))
	}
	return row.value, nil
}

func (o *ownedRows[T]) list(owner int64) []T {
	ids := make([]int64, 0, len(o.rows))
	for id, row := range o.rows {
		if row.owner == owner {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })
	values := make([]T, 0, len(ids))
	for _, id := range ids {
		values = append(values, o.rows[id].value)
	}
	return values
}

func (o *ownedRows[T]) delete(owner int64, id int64) error {
	if _, err := o.get(owner, id); err != nil {
		return err
	}
	delete(o.rows, id)
	return nil
}

type fakeRecipes struct {
	clock  *clock
	nextId int64
	rows   map[int64]data.RecipeDTO
}

func (f *fakeRecipes) Create(ctx context.Context, owner int64, input data.RecipeInputDTO) (data.RecipeDTO, error) {
	f.nextId++
	now := f.clock.tick()
	recipe := data.RecipeDTO{
		Id:           f.nextId,
		Owner:        owner,
		Title:        *input.Title,
		Description:  *input.Description,
		Ingredients:  *input.Ingredients,
		Instructions: *input.Instructions,
		Calories:     *input.Calories,
		Protein:      *input.Protein,
		Fat:          *input.Fat,
		Carbs:        *input.Carbs,
		DietaryType:  *input.DietaryType,
		Shared:       input.Shared != nil && *input.Shared,
		CreateTime:   now,
		UpdateTime:   now,
	}
	f.rows[recipe.Id] = recipe
	return recipe, nil
}

func (f *fakeRecipes) Get(ctx context.Context, recipeId int64) (data.RecipeDTO, error) {
	recipe, ok := f.rows[recipeId]
	if !ok {
		return recipe, exceptions.NotFound("recipe", strconv.FormatInt(recipeId, 10))
	}
	return recipe, nil
}

func (f *fakeRecipes) GetMany(ctx context.Context, recipeIds []int64) (map[int64]data.RecipeDTO, error) {
	found := make(map[int64]data.RecipeDTO)
	for _, id := range recipeIds {
		if recipe, ok := f.rows[id]; ok {
			found[id] = recipe
		}
	}
	return found, nil
}

func (f *fakeRecipes) Update(ctx context.Context, owner int64, recipeId int64, input data.RecipeInputDTO) (data.RecipeDTO, error) {
	recipe, ok := f.rows[recipeId]
	if !ok || recipe.Owner != owner {
		return recipe, exceptions.NotFound("recipe", strconv.FormatInt(recipeId, 10))
	}
	recipe.Title = *input.Title
	recipe.Description = *input.Description
	recipe.Ingredients = *input.Ingredients
	recipe.Instructions = *input.Instructions
	recipe.Calories = *input.Calories
	recipe.Protein = *input.Protein
	recipe.Fat = *input.Fat
	recipe.Carbs = *input.Carbs
	recipe.DietaryType = *input.DietaryType
	recipe.Shared = *input.Shared
	recipe.UpdateTime = f.clock.tick()
	f.rows[recipeId] = recipe
	return recipe, nil
}

func (f *fakeRecipes) Delete(ctx context.Context, owner int64, recipeId int64) error {
	recipe, ok := f.rows[recipeId]
	if !ok || recipe.Owner != owner {
		return exceptions.NotFound("recipe", strconv.FormatInt(recipeId, 10))
	}
	delete(f.rows, recipeId)
	return nil
}

func (f *fakeRecipes) matching(keep func(data.RecipeDTO) bool, filter data.RecipeFilter) []data.RecipeDTO {
	var items []data.RecipeDTO
	for _, recipe := range f.rows {
		if !keep(recipe) {
			continue
		}
		if filter.DietaryType != nil && recipe.DietaryType != *filter.DietaryType {
			continue
		}
		items = append(items, recipe)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Id > items[j].Id })
	return items
}

func (f *fakeRecipes) ListByOwner(ctx context.Context, owner int64, filter data.RecipeFilter, params data.QueryParams) (data.QueryResults[data.RecipeDTO], error) {
	return data.QueryResults[data.RecipeDTO]{Items: f.matching(func(r data.RecipeDTO) bool { return r.Owner == owner }, filter)}, nil
}

func (f *fakeRecipes) ListShared(ctx context.Context, filter data.RecipeFilter, params data.QueryParams) (data.QueryResults[data.RecipeDTO], error) {
	return data.QueryResults[data.RecipeDTO]{Items: f.matching(func(r data.RecipeDTO) bool { return r.Shared }, filter)}, nil
}

func (f *fakeRecipes) CountByOwner(ctx context.Context, owner int64) (int, error) {
	return len(f.matching(func(r data.RecipeDTO) bool { return r.Owner == owner }, data.RecipeFilter{})), nil
}

type pair struct {
	left  int64
	right int64
}

type fakeFavorites struct {
	rows map[pair]data.FavoriteDTO
	next int64
}

func (f *fakeFavorites) Add(ctx context.Context, userId int64, recipeId int64) (data.FavoriteDTO, error) {
	key := pair{userId, recipeId}
	if _, ok := f.rows[key]; ok {
		return data.FavoriteDTO{}, exceptions.Conflict("favorite", fmt.Sprint(key))
	}
	f.next++
	favorite := data.FavoriteDTO{Id: f.next, UserId: userId, RecipeId: recipeId}
	f.rows[key] = favorite
	return favorite, nil
}

func (f *fakeFavorites) Remove(ctx context.Context, userId int64, recipeId int64) error {
	key := pair{userId, recipeId}
	if _, ok := f.rows[key]; !ok {
		return exceptions.NotFound("favorite", fmt.Sprint(key))
	}
	delete(f.rows, key)
	return nil
}

func (f *fakeFavorites) Exists(ctx context.Context, userId int64, recipeId int64) (bool, error) {
	_, ok := f.rows[pair{userId, recipeId}]
	return ok, nil
}

func (f *fakeFavorites) List(ctx context.Context, userId int64, params data.QueryParams) (data.QueryResults[data.FavoriteDTO], error) {
	var items []data.FavoriteDTO
	for key, favorite := range f.rows {
		if key.left == userId {
			items = append(items, favorite)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Id > items[j].Id })
	return data.QueryResults[data.FavoriteDTO]{Items: items}, nil
}

func (f *fakeFavorites) ListByRecipe(ctx context.Context, recipeId int64) ([]data.FavoriteDTO, error) {
	var items []data.FavoriteDTO
	for key, favorite := range f.rows {
		if key.right == recipeId {
			items = append(items, favorite)
		}
	}
	return items, nil
}

func (f *fakeFavorites) Count(ctx context.Context, userId int64) (int, error) {
	results, _ := f.List(ctx, userId, data.QueryParams{})
	return len(results.Items), nil
}

type fakeReviews struct {
	clock  *clock
	nextId int64
	rows   map[pair]data.ReviewDTO
}

func (f *fakeReviews) Upsert(ctx context.Context, recipe data.RecipeDTO, reviewer int64, input data.ReviewInputDTO) (data.ReviewDTO, error) {
	key := pair{recipe.Id, reviewer}
	now := f.clock.tick()
	review, ok := f.rows[key]
	if !ok {
		f.nextId++
		review = data.ReviewDTO{Id: f.nextId, CreateTime: now}
	}
	review.RecipeId = recipe.Id
	review.RecipeOwner = recipe.Owner
	review.RecipeTitle = recipe.Title
	review.Reviewer = reviewer
	review.ReviewerName = input.ReviewerName
	review.Rating = *input.Rating
	review.Comment = input.Comment
	review.UpdateTime = now
	f.rows[key] = review
	return review, nil
}

func (f *fakeReviews) Get(ctx context.Context, recipeId int64, reviewer int64) (data.ReviewDTO, error) {
	review, ok := f.rows[pair{recipeId, reviewer}]
	if !ok {
		return review, exceptions.NotFound("review", fmt.Sprintf("%d:%d", recipeId, reviewer))
	}
	return review, nil
}

func (f *fakeReviews) Delete(ctx context.Context, recipeId int64, reviewer int64) error {
	if _, err := f.Get(ctx, recipeId, reviewer); err != nil {
		return err
	}
	delete(f.rows, pair{recipeId, reviewer})
	return nil
}

func (f *fakeReviews) ListByRecipe(ctx context.Context, recipeId int64) ([]data.ReviewDTO, error) {
	var items []data.ReviewDTO
	for key, review := range f.rows {
		if key.left == recipeId {
			items = append(items, review)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreateTime.After(items[j].CreateTime) })
	return items, nil
}

func (f *fakeReviews) ListByReviewer(ctx context.Context, reviewer int64) ([]data.ReviewDTO, error) {
	var items []data.ReviewDTO
	for key, review := range f.rows {
		if key.right == reviewer {
			items = append(items, review)
		}
	}
	return items, nil
}

type fakePreferences struct {
	rows map[int64]data.DietaryPreferenceDTO
}

func (f *fakePreferences) GetOrCreate(ctx context.Context, userId int64) (data.DietaryPreferenceDTO, error) {
	preference, ok := f.rows[userId]
	if !ok {
		preference = data.DietaryPreferenceDTO{UserId: userId}
		f.rows[userId] = preference
	}
	return preference, nil
}

func (f *fakePreferences) Put(ctx context.Context, userId int64, input data.DietaryPreferenceInputDTO) (data.DietaryPreferenceDTO, error) {
	preference, _ := f.GetOrCreate(ctx, userId)
	flag := func(value *bool) bool {
		return value != nil && *value
	}
	preference.Vegan = flag(input.Vegan)
	preference.Vegetarian = flag(input.Vegetarian)
	preference.GlutenFree = flag(input.GlutenFree)
	preference.NutAllergy = flag(input.NutAllergy)
	preference.DairyFree = flag(input.DairyFree)
	preference.LowCarb = flag(input.LowCarb)
	preference.CustomRestrictions = nil
	if input.CustomRestrictions != nil && *input.CustomRestrictions != "" {
		preference.CustomRestrictions = input.CustomRestrictions
	}
	f.rows[userId] = preference
	return preference, nil
}

func (f *fakePreferences) Delete(ctx context.Context, userId int64) error {
	delete(f.rows, userId)
	return nil
}

type fakeMealPlans struct {
	plans  *ownedRows[data.MealPlanDTO]
	nextId int64
	items  map[int64][]data.MealPlanItemDTO
}

func (f *fakeMealPlans) List(ctx context.Context, owner int64, params data.QueryParams) (data.QueryResults[data.MealPlanDTO], error) {
	return data.QueryResults[data.MealPlanDTO]{Items: f.plans.list(owner)}, nil
}

func (f *fakeMealPlans) Get(ctx context.Context, owner int64, id int64) (data.MealPlanDTO, error) {
	return f.plans.get(owner, id)
}

func (f *fakeMealPlans) Create(ctx context.Context, owner int64, input data.MealPlanInputDTO) (data.MealPlanDTO, error) {
	plan := data.MealPlanDTO{Id: f.plans.id(), Owner: owner, Name: *input.Name}
	f.plans.rows[plan.Id] = ownedRow[data.MealPlanDTO]{owner: owner, value: plan}
	return plan, nil
}

func (f *fakeMealPlans) Update(ctx context.Context, owner int64, id int64, input data.MealPlanInputDTO) (data.MealPlanDTO, error) {
	plan, err := f.plans.get(owner, id)
	if err != nil {
		return plan, err
	}
	plan.Name = *input.Name
	f.plans.rows[id] = ownedRow[data.MealPlanDTO]{owner: owner, value: plan}
	return plan, nil
}

func (f *fakeMealPlans) Delete(ctx context.Context, owner int64, id int64) error {
	return f.plans.delete(owner, id)
}

func (f *fakeMealPlans) Count(ctx context.Context, owner int64) (int, error) {
	return len(f.plans.list(owner)), nil
}

func (f *fakeMealPlans) AddItem(ctx context.Context, mealPlanId int64, input data.MealPlanItemInputDTO) (data.MealPlanItemDTO, error) {
	for _, item := range f.items[mealPlanId] {
		if item.MealDate == *input.MealDate && item.MealType == *input.MealType {
			return data.MealPlanItemDTO{}, exceptions.Conflict("meal plan item", item.MealDate)
		}
	}
	f.nextId++
	item := data.MealPlanItemDTO{
		Id:         f.nextId,
		MealPlanId: mealPlanId,
		RecipeId:   *input.RecipeId,
		MealDate:   *input.MealDate,
		MealType:   *input.MealType,
	}
	f.items[mealPlanId] = append(f.items[mealPlanId], item)
	return item, nil
}

func (f *fakeMealPlans) ListItems(ctx context.Context, mealPlanId int64) ([]data.MealPlanItemDTO, error) {
	items := append([]data.MealPlanItemDTO{}, f.items[mealPlanId]...)
	sort.Slice(items, func(i, j int) bool {
		if items[i].MealDate != items[j].MealDate {
			return items[i].MealDate < items[j].MealDate
		}
		return items[i].MealType < items[j].MealType
	})
	return items, nil
}

func (f *fakeMealPlans) DeleteItem(ctx context.Context, target data.MealPlanItemDTO) error {
	items := f.items[target.MealPlanId][:0]
	for _, item := range f.items[target.MealPlanId] {
		if item.Id != target.Id {
			items = append(items, item)
		}
	}
	f.items[target.MealPlanId] = items
	return nil
}

func (f *fakeMealPlans) ListItemsByRecipe(ctx context.Context, recipeId int64) ([]data.MealPlanItemDTO, error) {
	var found []data.MealPlanItemDTO
	for _, items := range f.items {
		for _, item := range items {
			if item.RecipeId == recipeId {
				found = append(found, item)
			}
		}
	}
	return found, nil
}

type fakeShoppingLists struct {
	lists      *ownedRows[data.ShoppingListDTO]
	nextItemId int64
	items      map[int64]data.ShoppingListItemDTO
	failAfter  int
}

func (f *fakeShoppingLists) List(ctx context.Context, owner int64, params data.QueryParams) (data.QueryResults[data.ShoppingListDTO], error) {
	return data.QueryResults[data.ShoppingListDTO]{Items: f.lists.list(owner)}, nil
}

func (f *fakeShoppingLists) Get(ctx context.Context, owner int64, id int64) (data.ShoppingListDTO, error) {
	return f.lists.get(owner, id)
}

func (f *fakeShoppingLists) Create(ctx context.Context, owner int64, input data.ShoppingListInputDTO) (data.ShoppingListDTO, error) {
	list := data.ShoppingListDTO{Id: f.lists.id(), Owner: owner, Name: *input.Name, MealPlanId: input.MealPlanId}
	f.lists.rows[list.Id] = ownedRow[data.ShoppingListDTO]{owner: owner, value: list}
	return list, nil
}

func (f *fakeShoppingLists) Update(ctx context.Context, owner int64, id int64, input data.ShoppingListInputDTO) (data.ShoppingListDTO, error) {
	list, err := f.lists.get(owner, id)
	if err != nil {
		return list, err
	}
	if input.Name != nil {
		list.Name = *input.Name
	}
	f.lists.rows[id] = ownedRow[data.ShoppingListDTO]{owner: owner, value: list}
	return list, nil
}

func (f *fakeShoppingLists) Delete(ctx context.Context, owner int64, id int64) error {
	return f.lists.delete(owner, id)
}

func (f *fakeShoppingLists) Count(ctx context.Context, owner int64) (int, error) {
	return len(f.lists.list(owner)), nil
}

func (f *fakeShoppingLists) CreateWithItems(ctx context.Context, owner int64, input data.ShoppingListInputDTO, inputs []data.ShoppingListItemInputDTO) (data.ShoppingListDTO, []data.ShoppingListItemDTO, error) {
	list, _ := f.Create(ctx, owner, input)
	var written []data.ShoppingListItemDTO
	var failed []string
	for i, in := range inputs {
		if f.failAfter > 0 && i >= f.failAfter {
			failed = append(failed, *in.Name)
			continue
		}
		item, _ := f.AddItem(ctx, owner, list.Id, in)
		written = append(written, item)
	}
	if len(failed) > 0 {
		return list, written, &exceptions.PartialWriteError{
			Resource: "shopping list",
			Id:       strconv.FormatInt(list.Id, 10),
			Failed:   failed,
			Cause:    fmt.Errorf("transaction canceled"),
		}
	}
	return list, written, nil
}

func (f *fakeShoppingLists) ListByMealPlan(ctx context.Context, mealPlanId int64) ([]data.ShoppingListDTO, error) {
	var found []data.ShoppingListDTO
	for _, row := range f.lists.rows {
		if row.value.MealPlanId != nil && *row.value.MealPlanId == mealPlanId {
			found = append(found, row.value)
		}
	}
	return found, nil
}

func (f *fakeShoppingLists) Unlink(ctx context.Context, owner int64, listId int64) error {
	list, err := f.lists.get(owner, listId)
	if err != nil {
		return err
	}
	list.MealPlanId = nil
	f.lists.rows[listId] = ownedRow[data.ShoppingListDTO]{owner: owner, value: list}
	return nil
}

func (f *fakeShoppingLists) AddItem(ctx context.Context, owner int64, listId int64, input data.ShoppingListItemInputDTO) (data.ShoppingListItemDTO, error) {
	f.nextItemId++
	item := data.ShoppingListItemDTO{
		Id:       f.nextItemId,
		ListId:   listId,
		Owner:    owner,
		Name:     *input.Name,
		Quantity: *input.Quantity,
	}
	f.items[item.Id] = item
	return item, nil
}

func (f *fakeShoppingLists) GetItem(ctx context.Context, itemId int64) (data.ShoppingListItemDTO, error) {
	item, ok := f.items[itemId]
	if !ok {
		return item, exceptions.NotFound("shopping list item", strconv.FormatInt(itemId, 10))
	}
	return item, nil
}

func (f *fakeShoppingLists) ListItems(ctx context.Context, listId int64) ([]data.ShoppingListItemDTO, error) {
	var found []data.ShoppingListItemDTO
	for _, item := range f.items {
		if item.ListId == listId {
			found = append(found, item)
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].Id < found[j].Id })
	return found, nil
}

func (f *fakeShoppingLists) ToggleItem(ctx context.Context, owner int64, itemId int64) (data.ShoppingListItemDTO, error) {
	item, ok := f.items[itemId]
	if !ok || item.Owner != owner {
		return item, exceptions.NotFound("shopping list item", strconv.FormatInt(itemId, 10))
	}
	item.Checked = !item.Checked
	f.items[itemId] = item
	return item, nil
}

func (f *fakeShoppingLists) DeleteItem(ctx context.Context, owner int64, itemId int64) error {
	item, ok := f.items[itemId]
	if !ok || item.Owner != owner {
		return exceptions.NotFound("shopping list item", strconv.FormatInt(itemId, 10))
	}
	delete(f.items, itemId)
	return nil
}

type fakeSubscriptions struct {
	rows *ownedRows[data.SubscriptionDTO]
}

func (f *fakeSubscriptions) List(ctx context.Context, owner int64, params data.QueryParams) (data.QueryResults[data.SubscriptionDTO], error) {
	return data.QueryResults[data.SubscriptionDTO]{Items: f.rows.list(owner)}, nil
}

func (f *fakeSubscriptions) Get(ctx context.Context, owner int64, id int64) (data.SubscriptionDTO, error) {
	return f.rows.get(owner, id)
}

func (f *fakeSubscriptions) Create(ctx context.Context, owner int64, input data.SubscriptionInputDTO) (data.SubscriptionDTO, error) {
	subscription := data.SubscriptionDTO{
		Id:            f.rows.id(),
		Endpoint:      *input.Endpoint,
		Protocol:      *input.Protocol,
		SubscriberArn: *input.SubscriberArn,
	}
	f.rows.rows[subscription.Id] = ownedRow[data.SubscriptionDTO]{owner: owner, value: subscription}
	return subscription, nil
}

func (f *fakeSubscriptions) Update(ctx context.Context, owner int64, id int64, input data.SubscriptionInputDTO) (data.SubscriptionDTO, error) {
	return f.rows.get(owner, id)
}

func (f *fakeSubscriptions) Delete(ctx context.Context, owner int64, id int64) error {
	return f.rows.delete(owner, id)
}

func (f *fakeSubscriptions) Count(ctx context.Context, owner int64) (int, error) {
	return len(f.rows.list(owner)), nil
}

type fakeNotifications struct {
	subscribed   map[string]notifications.SubscribeInput
	unsubscribed []string
	published    []notifications.PublishInput
}

func (f *fakeNotifications) Subscribe(ctx context.Context, input notifications.SubscribeInput) (*notifications.SubscribeOutput, error) {
	arn := fmt.Sprintf("arn:aws:sns:us-east-1:123456789012:reviews:%d", len(f.subscribed)+1)
	f.subscribed[arn] = input
	return &notifications.SubscribeOutput{SubscriberId: arn}, nil
}

func (f *fakeNotifications) Unsubscribe(ctx context.Context, subscriberId string) error {
	f.unsubscribed = append(f.unsubscribed, subscriberId)
	return nil
}

func (f *fakeNotifications) Publish(ctx context.Context, input notifications.PublishInput) error {
	f.published = append(f.published, input)
	return nil
}

type fixture struct {
	service       *cookbook.Service
	recipes       *fakeRecipes
	favorites     *fakeFavorites
	reviews       *fakeReviews
	preferences   *fakePreferences
	mealPlans     *fakeMealPlans
	shoppingLists *fakeShoppingLists
	subscriptions *fakeSubscriptions
	notifications *fakeNotifications
}

func newFixture() *fixture {
	c := &clock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	f := &fixture{
		recipes:       &fakeRecipes{clock: c, rows: make(map[int64]data.RecipeDTO)},
		favorites:     &fakeFavorites{rows: make(map[pair]data.FavoriteDTO)},
		reviews:       &fakeReviews{clock: c, rows: make(map[pair]data.ReviewDTO)},
		preferences:   &fakePreferences{rows: make(map[int64]data.DietaryPreferenceDTO)},
		mealPlans:     &fakeMealPlans{plans: newOwnedRows[data.MealPlanDTO]("mealplan"), items: make(map[int64][]data.MealPlanItemDTO)},
		shoppingLists: &fakeShoppingLists{lists: newOwnedRows[data.ShoppingListDTO]("shoppinglist"), items: make(map[int64]data.ShoppingListItemDTO)},
		subscriptions: &fakeSubscriptions{rows: newOwnedRows[data.SubscriptionDTO]("subscription")},
		notifications: &fakeNotifications{subscribed: make(map[string]notifications.SubscribeInput)},
	}
	f.service = &cookbook.Service{
		Recipes:       f.recipes,
		Favorites:     f.favorites,
		Reviews:       f.reviews,
		Preferences:   f.preferences,
		MealPlans:     f.mealPlans,
		ShoppingLists: f.shoppingLists,
		Subscriptions: f.subscriptions,
		Notifications: f.notifications,
	}
	return f
}
