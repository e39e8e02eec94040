package service

import (
	"errors"

	"grubdash/internal/common/apperr"
	"grubdash/internal/common/payload"
	"grubdash/internal/microservices/dishes/repository"
)

func bodyHasName(req *DishRequest) error {
	name, ok := req.Body.NonEmptyString("name")
	if !ok {
		return apperr.BadRequest("A 'name' property is required.")
	}
	req.Name = name
	return nil
}

func bodyHasDescription(req *DishRequest) error {
	desc, ok := req.Body.NonEmptyString("description")
	if !ok {
		return apperr.BadRequest("A 'description' property is required.")
	}
	req.Description = desc
	return nil
}

// bodyHasPrice only checks that a price was sent; 0 counts as sent.
func bodyHasPrice(req *DishRequest) error {
	raw, ok := req.Body.Raw("price")
	if !ok || !payload.Present(raw) {
		return apperr.BadRequest("A 'price' property is required.")
	}
	req.Price = raw
	return nil
}

// bodyHasValidPrice is the create rule: the body price, coerced to a
// number, must be greater than -1. Zero and numeric strings pass. The
// coerced number is what gets stored, so "5" is saved as 5 and true as 1.
func bodyHasValidPrice(req *DishRequest) error {
	raw, _ := req.Body.Raw("price")
	price := payload.Coerce(raw)
	if !(price > -1) {
		return apperr.BadRequest("price cannot be less than 0.")
	}
	req.Price = raw
	req.PriceValue = price
	return nil
}

// bodyHasValidPriceForUpdate is the update rule: the price kept by
// bodyHasPrice must be a JSON number greater than 0.
func bodyHasValidPriceForUpdate(req *DishRequest) error {
	price, ok := payload.Number(req.Price)
	if !ok || price <= 0 {
		return apperr.BadRequest("price must be an integer greater than $0.")
	}
	req.PriceValue = price
	return nil
}

func bodyHasImg(req *DishRequest) error {
	img, ok := req.Body.NonEmptyString("image_url")
	if !ok {
		return apperr.BadRequest("An 'image_url' property is required.")
	}
	req.ImageURL = img
	return nil
}

// dishIdMatchesDataId allows a missing, null or empty body id.
func dishIdMatchesDataId(req *DishRequest) error {
	raw, ok := req.Body.Raw("id")
	if !ok || payload.Equal(raw, "") || payload.Equal(raw, req.DishID) {
		return nil
	}
	return apperr.BadRequest("id %s must match dataId provided in parameters", payload.Text(raw))
}

func (s *DishService) dishExists(req *DishRequest) error {
	d, err := s.repo.Get(req.Ctx, req.DishID)
	if errors.Is(err, repository.ErrItemNotFound) {
		return apperr.NotFound("Dish id not found: %s", req.DishID)
	}
	if err != nil {
		return err
	}
	req.Matching = d
	return nil
}
